package generation

import (
	"context"
	"fmt"

	"doodle-magic-server/modules/common/config"
	"doodle-magic-server/modules/submodule/gemini"
	"doodle-magic-server/modules/submodule/stability"
)

// Engine turns a source drawing plus prompts into generated image bytes.
// Implementations make exactly one upstream attempt; failure classification
// uses the apperrors kinds and recovery belongs to the caller.
type Engine interface {
	Name() string
	Generate(ctx context.Context, image []byte, prompt, negativePrompt string) ([]byte, error)
}

// NewEngine selects the engine once at process start.
func NewEngine(cfg *config.Config) (Engine, error) {
	switch cfg.GenerationEngine {
	case config.EngineStability:
		return stability.NewService(cfg), nil
	case config.EngineGemini:
		return gemini.NewService(cfg)
	default:
		return nil, fmt.Errorf("unknown generation engine: %s", cfg.GenerationEngine)
	}
}
