package results

import (
	"context"
	"log"

	"doodle-magic-server/modules/common/imaging"
	"doodle-magic-server/modules/common/model"
	"doodle-magic-server/modules/common/storage"
)

// Result is the record plus, on a transient backend, both images inlined so
// the client can render without reaching the (possibly gone) reference URLs.
type Result struct {
	model.RequestRecord
	OriginalImage  string `json:"originalImage,omitempty"`
	GeneratedImage string `json:"generatedImage,omitempty"`
}

// Service reconstructs a client-consumable result from stored artifacts.
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// GetResult loads the record for id. Reading a record never re-invokes the
// upstream engine. An inline read failure downgrades to reference-only
// output instead of failing the lookup.
func (s *Service) GetResult(ctx context.Context, id string) (*Result, error) {
	rec, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &Result{RequestRecord: *rec}

	if s.store.Inline() {
		original, origErr := s.store.Get(ctx, id, model.RoleOriginal)
		generated, genErr := s.store.Get(ctx, id, model.RoleGenerated)
		if origErr != nil || genErr != nil {
			log.Printf("⚠️ Error reading image files for %s: orig=%v gen=%v", id, origErr, genErr)
		} else {
			result.OriginalImage = imaging.EncodeDataURI(original)
			result.GeneratedImage = imaging.EncodeDataURI(generated)
		}
	}

	return result, nil
}
