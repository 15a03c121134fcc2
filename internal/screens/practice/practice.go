// Package practice implements the active question screen. It drives
// the session controller and surfaces its warnings without ever
// blocking progression on them.
package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tanmay-g/prepdrill/internal/explain"
	"github.com/tanmay-g/prepdrill/internal/qset"
	"github.com/tanmay-g/prepdrill/internal/router"
	"github.com/tanmay-g/prepdrill/internal/screen"
	"github.com/tanmay-g/prepdrill/internal/screens/summary"
	sess "github.com/tanmay-g/prepdrill/internal/session"
	"github.com/tanmay-g/prepdrill/internal/ui/components"
	"github.com/tanmay-g/prepdrill/internal/ui/layout"
)

// PracticeScreen runs one practice session over a question set.
type PracticeScreen struct {
	ctrl       *sess.Controller
	explainSvc *explain.Service
	username   string
	setName    string
	missing    int

	options components.OptionPicker

	answered int
	correct  int

	lastQ        *qset.Question
	lastChoice   string
	showFeedback bool

	warnMsg     string
	errMsg      string
	quitConfirm bool

	explainID   string
	explainText string
	explainErr  string
	showExplain bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates the practice screen. missing is the number of questions
// skipped during set loading because their images were absent.
func New(ctrl *sess.Controller, explainSvc *explain.Service, username, setName string, missing int, letters []string) *PracticeScreen {
	return &PracticeScreen{
		ctrl:       ctrl,
		explainSvc: explainSvc,
		username:   username,
		setName:    setName,
		missing:    missing,
		options:    components.NewOptionPicker(letters),
	}
}

// UserInfo feeds the header badge.
func (s *PracticeScreen) UserInfo() (string, int) {
	return s.username, s.ctrl.Level()
}

func (s *PracticeScreen) Title() string {
	return fmt.Sprintf("Practice · %s", s.setName)
}

func (s *PracticeScreen) Init() tea.Cmd {
	draw, err := s.ctrl.Start(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.applyDraw(draw)
	return tickCmd()
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showExplain {
		return []layout.KeyHint{
			{Key: "any key", Description: "Close explanation"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "A-E", Description: "Answer"},
		{Key: "Enter", Description: "Next question"},
	}
	if s.explainSvc.Available() {
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Explain"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	return hints
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.ctrl.State() == sess.StateFinished {
			return s, nil
		}
		return s, tickCmd()

	case explainPollMsg:
		return s.pollExplanation()

	case sessionEndMsg:
		return s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showExplain {
		s.showExplain = false
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.advance()
	case "x":
		return s.requestExplanation()
	}

	updated, letter := s.options.Update(msg)
	s.options = updated
	if letter != "" {
		if err := s.ctrl.SubmitChoice(letter); err != nil && !errors.Is(err, sess.ErrNoOpenQuestion) {
			s.warnMsg = err.Error()
		} else {
			s.warnMsg = ""
			s.showFeedback = false
		}
	}
	return s, nil
}

// advance records the current answer and opens the next question.
func (s *PracticeScreen) advance() (screen.Screen, tea.Cmd) {
	prevQ := s.ctrl.CurrentQuestion()
	prevChoice := s.ctrl.Choice()

	draw, err := s.ctrl.RequestNext(context.Background())
	if err != nil {
		switch {
		case errors.Is(err, sess.ErrAnswerRequired):
			s.warnMsg = "Select an answer before moving on."
		case errors.Is(err, sess.ErrSessionFinished):
			return s, func() tea.Msg { return sessionEndMsg{} }
		default:
			s.errMsg = err.Error()
		}
		return s, nil
	}

	if prevQ != nil && prevChoice != nil {
		s.answered++
		s.lastQ = prevQ
		s.lastChoice = *prevChoice
		s.showFeedback = true
		if *prevChoice == prevQ.Correct {
			s.correct++
		}
	}

	s.applyDraw(draw)
	if draw.Finished {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, nil
}

// applyDraw resets per-question state after a new draw.
func (s *PracticeScreen) applyDraw(draw *sess.Draw) {
	s.options.Reset()
	s.warnMsg = ""
	s.dismissExplanation()

	if draw.SaveErr != nil {
		s.warnMsg = "Could not save your answer. Progress continues, but this attempt was not recorded."
	} else if draw.HistoryErr != nil {
		s.warnMsg = "Could not read your history. Level falls back to 1 for now."
	}
}

func (s *PracticeScreen) finish() (screen.Screen, tea.Cmd) {
	s.dismissExplanation()
	result := summary.New(s.answered, s.correct, s.ctrl.Level())
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: result}
	}
}

func (s *PracticeScreen) requestExplanation() (screen.Screen, tea.Cmd) {
	if !s.explainSvc.Available() {
		s.warnMsg = "Explanations are unavailable. Configure an API key to enable them."
		return s, nil
	}
	q := s.ctrl.CurrentQuestion()
	if q == nil {
		return s, nil
	}
	if s.ctrl.Choice() == nil {
		s.warnMsg = "Answer the question before asking for an explanation."
		return s, nil
	}

	id, err := s.explainSvc.Request(context.Background(), *q)
	if err != nil {
		s.warnMsg = err.Error()
		return s, nil
	}
	s.explainID = id
	s.explainText = ""
	s.explainErr = ""
	s.showExplain = true
	return s, explainPollCmd()
}

func (s *PracticeScreen) pollExplanation() (screen.Screen, tea.Cmd) {
	if s.explainID == "" {
		return s, nil
	}
	result, ok := s.explainSvc.Consume(s.explainID)
	if !ok {
		return s, explainPollCmd()
	}
	s.explainID = ""
	if result.Err != nil {
		s.explainErr = result.Err.Error()
	} else {
		s.explainText = result.Text
	}
	return s, nil
}

// dismissExplanation cancels any in-flight request and hides the overlay.
func (s *PracticeScreen) dismissExplanation() {
	if s.explainID != "" {
		s.explainSvc.Cancel(s.explainID)
		s.explainID = ""
	}
	s.explainText = ""
	s.explainErr = ""
	s.showExplain = false
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func explainPollCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return explainPollMsg(t)
	})
}
