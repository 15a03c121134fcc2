// Package llm abstracts the vision-capable model providers used to
// generate worked solutions for question images.
package llm

import "context"

// Provider generates a step-by-step solution for a question image.
type Provider interface {
	// Explain sends the question image and its correct answer to the
	// model and returns the explanation text. Mathematical expressions
	// in the text use $...$, $$...$$ and \boxed{} delimiters.
	Explain(ctx context.Context, req ExplainRequest) (*Explanation, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// ExplainRequest describes one explanation to generate.
type ExplainRequest struct {
	// Image is the raw question image.
	Image []byte

	// ImageMIME is the image media type, e.g. "image/png".
	ImageMIME string

	// CorrectAnswer is the option letter the explanation must justify.
	CorrectAnswer string

	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Explanation holds the model's output.
type Explanation struct {
	// Text is the generated explanation.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// defaultMaxTokens bounds explanations when the request does not.
const defaultMaxTokens = 1500

func maxTokensOrDefault(req ExplainRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
