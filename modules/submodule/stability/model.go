package stability

// Image-to-image parameters. Strength controls how far the output may
// diverge from the source drawing (lower stays closer); cfg_scale is the
// documented default for the large/medium models.
const (
	ModeImageToImage = "image-to-image"
	Strength         = "0.75"
	CfgScale         = "4"
	OutputFormat     = "png"

	// Upload metadata for the source drawing part.
	SourceFileName    = "drawing.png"
	SourceContentType = "image/png"
)

// GenerateRequest carries one upstream attempt's inputs.
type GenerateRequest struct {
	Image          []byte
	Prompt         string
	NegativePrompt string
}
