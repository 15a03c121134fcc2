package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/level"
	"github.com/tanmay-g/prepdrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Show a user's level and accuracy breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		exists, err := st.Users().Exists(cmd.Context(), username)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("unknown user %q", username)
		}

		records, err := st.Attempts().AllForUser(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("read attempts: %w", err)
		}

		history := make([]level.Attempt, len(records))
		for i, r := range records {
			history[i] = level.Attempt{
				QuestionNumber: r.QuestionNumber,
				Choice:         r.Choice,
				Correct:        r.Correct,
			}
		}

		lvl := level.Calculate(history, cfg.Ranges, cfg.AssessmentWindow, cfg.PassThreshold)
		fmt.Printf("User:     %s\n", username)
		fmt.Printf("Level:    %d\n", lvl)
		fmt.Printf("Attempts: %d\n\n", len(records))

		for l := 1; l <= cfg.Ranges.Levels(); l++ {
			rng, _ := cfg.Ranges.Range(l)
			var total, correct int
			for _, a := range history {
				if a.QuestionNumber == nil || !rng.Contains(*a.QuestionNumber) {
					continue
				}
				total++
				if a.IsCorrect() {
					correct++
				}
			}
			pct := 0.0
			if total > 0 {
				pct = float64(correct) / float64(total) * 100
			}
			fmt.Printf("Level %d:  %3d/%-3d correct  (%.0f%%)\n", l, correct, total, pct)
		}

		if len(records) > 0 {
			fmt.Println("\nRecent attempts:")
			shown := records
			if len(shown) > 10 {
				shown = shown[:10]
			}
			for _, r := range shown {
				choice := "timeout"
				if r.Choice != nil {
					choice = *r.Choice
				}
				qNum := "-"
				if r.QuestionNumber != nil {
					qNum = fmt.Sprintf("Q%d", *r.QuestionNumber)
				}
				mark := "✗"
				if r.IsCorrect() {
					mark = "✓"
				}
				fmt.Printf("  %s  %-14s %-4s %s chose %-7s (correct %s, %ds)\n",
					r.AttemptedAt.Format("2006-01-02 15:04"), r.SetName, qNum,
					mark, choice, r.Correct, r.AnswerTimeSecs)
			}
		}
		return nil
	},
}
