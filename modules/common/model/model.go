package model

import "time"

// Artifact roles. Each submission owns exactly one artifact per role.
const (
	RoleOriginal  = "original"
	RoleGenerated = "generated"
)

// FileNameFor maps a role to its on-disk / object-store file name.
func FileNameFor(role string) string {
	return role + ".png"
}

// RecordFileName is the per-id metadata document name.
const RecordFileName = "metadata.json"

// RequestRecord is the durable unit describing one generation request. It is
// created once by the orchestrator and read-only afterwards; no update or
// delete path exists.
type RequestRecord struct {
	ID        string    `json:"id"`
	Original  string    `json:"original"`
	Generated string    `json:"generated"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`

	// Error is set when the upstream call did not succeed; Generated then
	// points at a copy of the original drawing so there is always something
	// to show.
	Error        bool   `json:"error,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
