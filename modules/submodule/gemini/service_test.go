package gemini

import (
	"strings"
	"testing"

	"doodle-magic-server/modules/common/config"
)

func TestComposePrompt(t *testing.T) {
	got := ComposePrompt("watercolor style", "scary, blurry")

	if !strings.Contains(got, "watercolor style") {
		t.Errorf("composed prompt missing style: %q", got)
	}
	if !strings.Contains(got, "Strictly avoid: scary, blurry.") {
		t.Errorf("composed prompt missing avoid-terms: %q", got)
	}
}

func TestComposePromptWithoutNegative(t *testing.T) {
	got := ComposePrompt("watercolor style", "")

	if strings.Contains(got, "Strictly avoid") {
		t.Errorf("composed prompt has avoid-terms without a negative prompt: %q", got)
	}
}

func TestNewServiceRequiresKey(t *testing.T) {
	_, err := NewService(&config.Config{GeminiModel: "gemini-2.5-flash-image"})
	if err == nil {
		t.Fatal("NewService() accepted an empty API key")
	}
}
