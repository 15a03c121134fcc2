package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/qset"
	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showExplain {
		return s.renderExplanation(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *PracticeScreen) renderQuestion(width, height int) string {
	q := s.ctrl.CurrentQuestion()
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Preparing next question...")
	}

	var b strings.Builder

	// Status line: level, questions left, countdown.
	remaining, expired := s.ctrl.Remaining()
	timerStr := fmt.Sprintf("%d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	switch {
	case expired:
		timerStr = "Time's up"
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	case remaining <= 10*time.Second:
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	case remaining <= 30*time.Second:
		timerStyle = lipgloss.NewStyle().Foreground(theme.Warning)
	}

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Level %d", s.ctrl.Level()))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered · %d left  ", s.answered, s.ctrl.PoolSize()+1)) +
		timerStyle.Render(timerStr) + "  "

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question card: the question itself is an image the learner opens
	// alongside the terminal.
	card := renderQuestionCard(q)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))

	if s.showFeedback && s.lastQ != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	if s.warnMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).
			Foreground(theme.Warning).Render(s.warnMsg))
	}

	if s.missing > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("%d questions skipped (missing images)", s.missing)))
	}

	return b.String()
}

func renderQuestionCard(q *qset.Question) string {
	var meta []string
	if q.Year != nil {
		meta = append(meta, fmt.Sprintf("Year %d", *q.Year))
	}
	if q.Number != nil {
		meta = append(meta, fmt.Sprintf("Question %d", *q.Number))
	}
	if q.Category != "" {
		meta = append(meta, q.Category)
	}

	var b strings.Builder
	if len(meta) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Open the question image:"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(q.ImagePath))

	return theme.Card.Render(b.String())
}

func (s *PracticeScreen) renderFeedback(width int) string {
	if s.lastChoice == s.lastQ.Correct {
		return theme.Correct.Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("Previous: correct! (%s)", s.lastQ.Correct))
	}
	return theme.Incorrect.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Previous: you chose %s, correct was %s", s.lastChoice, s.lastQ.Correct))
}

func (s *PracticeScreen) renderExplanation(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Explanation"))
	b.WriteString("\n\n")

	switch {
	case s.explainErr != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render(s.explainErr))
	case s.explainText == "":
		b.WriteString(theme.Subtitle.Width(width).Render("Thinking..."))
	default:
		body := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.Text).
			Render(s.explainText)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
		Render("press any key to close"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answered questions are already saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}
