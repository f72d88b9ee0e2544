package generate

// GenerateRequest is one user submission: a data-URI-encoded PNG from the
// drawing canvas plus a free-text description.
type GenerateRequest struct {
	ImageData string `json:"imageData"`
	Prompt    string `json:"prompt"`
}

// GenerateResponse answers a submission. On a durable backend only ID is
// set; on a transient backend both images ride along inline so the client
// never needs a second fetch.
type GenerateResponse struct {
	ID             string `json:"id"`
	OriginalImage  string `json:"originalImage,omitempty"`
	GeneratedImage string `json:"generatedImage,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
	Error          bool   `json:"error,omitempty"`
	Message        string `json:"message,omitempty"`
}
