package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanmay-g/prepdrill/internal/app"
	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/explain"
	"github.com/tanmay-g/prepdrill/internal/llm"
	"github.com/tanmay-g/prepdrill/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	cfg.DBPath = dbPath

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	deps := app.Deps{
		Cfg:   cfg,
		Store: st,
	}

	provider, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
		deps.Explain = explain.NewService(nil)
	} else {
		deps.Explain = explain.NewService(provider)
	}

	return app.Run(deps)
}
