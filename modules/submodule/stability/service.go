package stability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/config"
)

// Service wraps the Stability image-to-image endpoint. Exactly one upstream
// attempt is made per call; the orchestrator owns any recovery.
type Service struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

func NewService(cfg *config.Config) *Service {
	if cfg.StabilityAPIKey == "" {
		log.Println("⚠️ [Stability] STABILITY_API_KEY not configured")
	}

	return &Service{
		apiKey:     cfg.StabilityAPIKey,
		apiURL:     cfg.StabilityAPIURL,
		model:      cfg.StabilityModel,
		httpClient: &http.Client{Timeout: 180 * time.Second},
	}
}

func (s *Service) Name() string {
	return "stability"
}

// Generate submits the drawing and returns the stylized image bytes verbatim.
func (s *Service) Generate(ctx context.Context, image []byte, prompt, negativePrompt string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, apperrors.Configuration("missing Stability API key")
	}

	// Placeholder credential: pass-through mock so the pipeline is
	// exercisable without live upstream access.
	if s.apiKey == config.PlaceholderStabilityKey {
		log.Println("⚠️ [Stability] Using mock response - add your API key to .env")
		out := make([]byte, len(image))
		copy(out, image)
		return out, nil
	}

	body, contentType, err := buildForm(&GenerateRequest{
		Image:          image,
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
	}, s.model)
	if err != nil {
		return nil, apperrors.Generationf("failed to build request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, body)
	if err != nil {
		return nil, apperrors.Generationf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "image/*")
	req.Header.Set("Content-Type", contentType)

	log.Printf("🎨 [Stability] Sending image-to-image request (model: %s, prompt: %d chars)", s.model, len(prompt))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ [Stability] No response received from API: %v", err)
		return nil, apperrors.Generationf("no response received from API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Generationf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Error bodies come back as text/JSON even though we asked for
		// binary image content.
		log.Printf("❌ [Stability] API Error (%d): %s", resp.StatusCode, string(respBody))
		return nil, apperrors.Generationf("API Error (%d): %s", resp.StatusCode, string(respBody))
	}

	log.Printf("✅ [Stability] Received generated image: %d bytes", len(respBody))
	return respBody, nil
}

// buildForm assembles the multipart body the upstream contract expects.
func buildForm(req *GenerateRequest, model string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"prompt":        req.Prompt,
		"mode":          ModeImageToImage,
		"strength":      Strength,
		"model":         model,
		"output_format": OutputFormat,
		"cfg_scale":     CfgScale,
	}
	if req.NegativePrompt != "" {
		fields["negative_prompt"] = req.NegativePrompt
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, SourceFileName))
	header.Set("Content-Type", SourceContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, "", fmt.Errorf("failed to write image part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
