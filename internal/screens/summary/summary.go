// Package summary shows the end-of-session recap.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/router"
	"github.com/tanmay-g/prepdrill/internal/screen"
	"github.com/tanmay-g/prepdrill/internal/ui/layout"
	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

// SummaryScreen displays session totals before returning to the menu.
type SummaryScreen struct {
	answered int
	correct  int
	level    int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a finished session.
func New(answered, correct, level int) *SummaryScreen {
	return &SummaryScreen{
		answered: answered,
		correct:  correct,
		level:    level,
	}
}

func (s *SummaryScreen) Title() string {
	return "Session Complete"
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to menu"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Session complete!"))
	b.WriteString("\n\n")

	accuracy := 0.0
	if s.answered > 0 {
		accuracy = float64(s.correct) / float64(s.answered) * 100
	}

	lines := []string{
		fmt.Sprintf("Questions answered   %d", s.answered),
		fmt.Sprintf("Correct              %d", s.correct),
		fmt.Sprintf("Accuracy             %.0f%%", accuracy),
		fmt.Sprintf("Current level        %d", s.level),
	}
	card := theme.Card.Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
		Render("press any key to continue"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
