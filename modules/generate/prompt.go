package generate

// The audience is children: every prompt is steered toward a friendly
// illustration style and away from anything frightening.
const (
	// DefaultPrompt substitutes for an empty description.
	DefaultPrompt = "A colorful children's drawing"

	// PromptSuffix is appended to whatever the user typed.
	PromptSuffix = ", colorful children's illustration, professional quality, vibrant colors"

	// NegativePrompt is sent with every generation.
	NegativePrompt = "poor quality, blurry, distorted, scary, inappropriate"
)

// AugmentPrompt builds the text actually sent upstream.
func AugmentPrompt(userPrompt string) string {
	if userPrompt == "" {
		userPrompt = DefaultPrompt
	}
	return userPrompt + PromptSuffix
}
