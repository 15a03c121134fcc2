package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanmay-g/prepdrill/internal/latex"
	"github.com/tanmay-g/prepdrill/internal/llm"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-image>",
	Short: "Generate a worked explanation for a question image",
	Long: `Sends a question image to the configured LLM provider and prints a
step-by-step explanation. With --render-dir, embedded LaTeX is rendered
to PNG files via the CodeCogs API and referenced from the output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		imagePath := args[0]

		image, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read question image: %w", err)
		}

		provider, err := llm.NewProviderFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("no LLM provider configured: %w", err)
		}

		answer, _ := cmd.Flags().GetString("answer")
		result, err := provider.Explain(ctx, llm.ExplainRequest{
			Image:         image,
			ImageMIME:     mimeForPath(imagePath),
			CorrectAnswer: answer,
		})
		if err != nil {
			return fmt.Errorf("generate explanation: %w", err)
		}

		renderDir, _ := cmd.Flags().GetString("render-dir")
		if renderDir == "" {
			fmt.Println(result.Text)
			return nil
		}

		text, segments := latex.Extract(result.Text)
		if len(segments) == 0 {
			fmt.Println(result.Text)
			return nil
		}

		if err := os.MkdirAll(renderDir, 0o755); err != nil {
			return fmt.Errorf("create render dir: %w", err)
		}

		dl := latex.NewDownloader()
		for key, seg := range segments {
			data, err := dl.Fetch(ctx, latex.RenderURL(seg))
			if err != nil {
				// Keep the raw expression readable when rendering fails.
				text = strings.ReplaceAll(text, key, seg.Latex)
				fmt.Fprintf(os.Stderr, "render %q: %v\n", seg.Latex, err)
				continue
			}
			name := strings.ToLower(strings.Trim(key, "@")) + ".png"
			path := filepath.Join(renderDir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write rendered image: %w", err)
			}
			text = strings.ReplaceAll(text, key, fmt.Sprintf("[%s]", path))
		}

		fmt.Println(text)
		return nil
	},
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

func init() {
	explainCmd.Flags().String("answer", "", "The correct option letter, when known")
	explainCmd.Flags().String("render-dir", "", "Directory to save rendered LaTeX PNGs")
}
