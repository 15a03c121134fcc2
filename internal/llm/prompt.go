package llm

import "fmt"

// explainSystemPrompt sets the tutor persona and output conventions.
const explainSystemPrompt = `You are a helpful math tutor. Provide a clear, step-by-step explanation, at a high-school level, for how to solve the problem shown in the image.

Format the explanation clearly. Use LaTeX for mathematical expressions and formulas, enclosed in single dollar signs (e.g., $x^2 + y^2 = z^2$). For complex or multi-line equations, use double dollar signs ($$\frac{a}{b}$$). For important results or formulas that should stand out, use \boxed{your_formula}.`

// buildExplainUserMessage states the target answer for the model.
func buildExplainUserMessage(req ExplainRequest) string {
	return fmt.Sprintf(
		"The correct answer for this multiple-choice question is %q. Explain the reasoning to reach this answer.",
		req.CorrectAnswer,
	)
}
