package gemini

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/config"
)

// Service is the alternative stylization engine. Gemini has no negative
// prompt field, so avoid-terms are folded into the text prompt.
type Service struct {
	client *genai.Client
	model  string
}

func NewService(cfg *config.Config) (*Service, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini engine")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genai client: %w", err)
	}

	log.Println("✅ [Gemini] Engine initialized")
	return &Service{client: client, model: cfg.GeminiModel}, nil
}

func (s *Service) Name() string {
	return "gemini"
}

func (s *Service) Generate(ctx context.Context, image []byte, prompt, negativePrompt string) ([]byte, error) {
	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(ComposePrompt(prompt, negativePrompt)),
			genai.NewPartFromBytes(image, "image/png"),
		},
	}

	log.Printf("🎨 [Gemini] Calling API (model: %s, prompt: %d chars)", s.model, len(prompt))

	result, err := s.client.Models.GenerateContent(ctx, s.model, []*genai.Content{content}, nil)
	if err != nil {
		return nil, apperrors.Generationf("Gemini API call failed: %v", err)
	}

	if len(result.Candidates) == 0 {
		return nil, apperrors.Generationf("no candidates in response")
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			// 이미지는 InlineData로 반환됨
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ [Gemini] Received image: %d bytes", len(part.InlineData.Data))
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, apperrors.Generationf("no image data in response")
}

// ComposePrompt renders the redraw instruction for a model without a
// dedicated negative-prompt parameter.
func ComposePrompt(prompt, negativePrompt string) string {
	composed := fmt.Sprintf("Redraw the attached drawing in the described style, preserving its composition.\n\nStyle: %s", prompt)
	if negativePrompt != "" {
		composed += fmt.Sprintf("\n\nStrictly avoid: %s.", negativePrompt)
	}
	return composed
}
