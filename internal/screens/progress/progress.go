// Package progress shows the learner's level and attempt history.
package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/level"
	"github.com/tanmay-g/prepdrill/internal/router"
	"github.com/tanmay-g/prepdrill/internal/screen"
	"github.com/tanmay-g/prepdrill/internal/store"
	"github.com/tanmay-g/prepdrill/internal/ui/components"
	"github.com/tanmay-g/prepdrill/internal/ui/layout"
	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

const recentShown = 10

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

// levelStats aggregates attempts for one level band.
type levelStats struct {
	Level    int
	Attempts int
	Correct  int
}

// ProgressScreen displays the computed level, per-level accuracy and
// the most recent attempts.
type ProgressScreen struct {
	username string
	attempts *store.AttemptRepo
	cfg      config.Config

	records []store.Attempt
	stats   []levelStats
	level   int
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a ProgressScreen for a user.
func New(username string, attempts *store.AttemptRepo, cfg config.Config) *ProgressScreen {
	return &ProgressScreen{
		username: username,
		attempts: attempts,
		cfg:      cfg,
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

// UserInfo feeds the header badge.
func (s *ProgressScreen) UserInfo() (string, int) {
	return s.username, s.level
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.attempts.AllForUser(context.Background(), s.username)
		return historyLoadedMsg{Attempts: records, Err: err}
	}
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.records = msg.Attempts
		s.compute()
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// compute derives the level and per-level tallies from history.
func (s *ProgressScreen) compute() {
	history := make([]level.Attempt, len(s.records))
	for i, r := range s.records {
		history[i] = level.Attempt{
			QuestionNumber: r.QuestionNumber,
			Choice:         r.Choice,
			Correct:        r.Correct,
		}
	}
	s.level = level.Calculate(history, s.cfg.Ranges, s.cfg.AssessmentWindow, s.cfg.PassThreshold)

	s.stats = s.stats[:0]
	for lvl := 1; lvl <= s.cfg.Ranges.Levels(); lvl++ {
		rng, _ := s.cfg.Ranges.Range(lvl)
		st := levelStats{Level: lvl}
		for _, a := range history {
			if a.QuestionNumber == nil || !rng.Contains(*a.QuestionNumber) {
				continue
			}
			st.Attempts++
			if a.IsCorrect() {
				st.Correct++
			}
		}
		s.stats = append(s.stats, st)
	}
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).
		Render(fmt.Sprintf("%s · Level %d", s.username, s.level)))
	b.WriteString("\n\n")

	// Per-level accuracy bars.
	for _, st := range s.stats {
		var pct float64
		if st.Attempts > 0 {
			pct = float64(st.Correct) / float64(st.Attempts)
		}
		bar := components.NewProgressBar(
			fmt.Sprintf("Level %d", st.Level), pct, true, 50)
		line := bar.View() +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("  %d/%d", st.Correct, st.Attempts))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Recent attempts"))
	b.WriteString("\n")

	shown := s.records
	if len(shown) > recentShown {
		shown = shown[:recentShown]
	}
	for _, r := range shown {
		qNum := "—"
		if r.QuestionNumber != nil {
			qNum = fmt.Sprintf("Q%d", *r.QuestionNumber)
		}
		choice := "timeout"
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if r.Choice != nil {
			choice = *r.Choice
			if r.IsCorrect() {
				style = lipgloss.NewStyle().Foreground(theme.Success)
			} else {
				style = lipgloss.NewStyle().Foreground(theme.Error)
			}
		}
		line := fmt.Sprintf("%s  %-14s %-4s chose %-8s correct %s",
			r.AttemptedAt.Format("Jan 02 15:04"), r.SetName, qNum, choice, r.Correct)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
