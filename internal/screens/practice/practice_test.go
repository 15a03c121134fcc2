package practice

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tanmay-g/prepdrill/internal/explain"
	"github.com/tanmay-g/prepdrill/internal/level"
	"github.com/tanmay-g/prepdrill/internal/llm"
	"github.com/tanmay-g/prepdrill/internal/picker"
	"github.com/tanmay-g/prepdrill/internal/qset"
	sess "github.com/tanmay-g/prepdrill/internal/session"
	"github.com/tanmay-g/prepdrill/internal/store"
)

// memHistory is an in-memory attempt store.
type memHistory struct {
	attempts []store.Attempt
}

func (m *memHistory) Append(_ context.Context, a *store.Attempt) error {
	m.attempts = append([]store.Attempt{*a}, m.attempts...)
	return nil
}

func (m *memHistory) AllForUser(_ context.Context, _ string) ([]store.Attempt, error) {
	out := make([]store.Attempt, len(m.attempts))
	copy(out, m.attempts)
	return out, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testPool(n int) []qset.Question {
	pool := make([]qset.Question, n)
	for i := range pool {
		num := i + 1
		pool[i] = qset.Question{
			ImageFilename: fmt.Sprintf("q%d.png", num),
			ImagePath:     fmt.Sprintf("/tmp/q%d.png", num),
			Number:        &num,
			Correct:       "B",
		}
	}
	return pool
}

func testScreen(t *testing.T, n int) (*PracticeScreen, *memHistory) {
	t.Helper()
	history := &memHistory{}
	ctrl := sess.New(sess.Options{
		Username:         "amy",
		SetName:          "AMC8",
		Strategy:         picker.StrategyRandom,
		Ranges:           level.DefaultRanges(),
		AssessmentWindow: 25,
		PassThreshold:    21,
		QuestionTimeout:  150 * time.Second,
		OptionLetters:    []string{"A", "B", "C", "D", "E"},
	}, history, picker.New(nil), testPool(n))

	svc := explain.NewService(llm.NewMockProvider())
	s := New(ctrl, svc, "amy", "AMC8", 0, []string{"A", "B", "C", "D", "E"})
	if cmd := s.Init(); cmd == nil {
		t.Fatal("Init() returned no tick command")
	}
	return s, history
}

func TestAnswerThenAdvanceRecordsAttempt(t *testing.T) {
	s, history := testScreen(t, 3)

	s.Update(keyPress('b'))
	updated, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	got := updated.(*PracticeScreen)
	if len(history.attempts) != 1 {
		t.Fatalf("recorded %d attempts, want 1", len(history.attempts))
	}
	if got.answered != 1 || got.correct != 1 {
		t.Errorf("answered=%d correct=%d, want 1/1", got.answered, got.correct)
	}
	if !got.showFeedback {
		t.Error("feedback not shown after advance")
	}
}

func TestAdvanceWithoutAnswerWarns(t *testing.T) {
	s, history := testScreen(t, 3)

	updated, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	got := updated.(*PracticeScreen)
	if len(history.attempts) != 0 {
		t.Fatalf("recorded %d attempts, want 0", len(history.attempts))
	}
	if got.warnMsg == "" {
		t.Error("expected a warning about missing answer")
	}
}

func TestChangingAnswerBeforeAdvance(t *testing.T) {
	s, history := testScreen(t, 2)

	s.Update(keyPress('a'))
	s.Update(keyPress('b'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(history.attempts) != 1 {
		t.Fatalf("recorded %d attempts, want 1", len(history.attempts))
	}
	if choice := history.attempts[0].Choice; choice == nil || *choice != "B" {
		t.Errorf("recorded choice = %v, want B", choice)
	}
}

func TestQuitConfirmFlow(t *testing.T) {
	s, _ := testScreen(t, 3)

	updated, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	got := updated.(*PracticeScreen)
	if !got.quitConfirm {
		t.Fatal("esc did not open quit confirmation")
	}

	updated, _ = got.Update(keyPress('n'))
	got = updated.(*PracticeScreen)
	if got.quitConfirm {
		t.Error("n did not dismiss quit confirmation")
	}
}

func TestSessionEndOnExhaustedPool(t *testing.T) {
	s, _ := testScreen(t, 1)

	s.Update(keyPress('c'))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected session end command")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatal("expected sessionEndMsg after exhausting the pool")
	}
}

func TestExplainRequiresAnswer(t *testing.T) {
	s, _ := testScreen(t, 2)

	updated, _ := s.Update(keyPress('x'))
	got := updated.(*PracticeScreen)
	if got.showExplain {
		t.Error("explanation opened before answering")
	}
	if got.warnMsg == "" {
		t.Error("expected a warning to answer first")
	}

	got.Update(keyPress('a'))
	updated, cmd := got.Update(keyPress('x'))
	got = updated.(*PracticeScreen)
	if !got.showExplain {
		t.Error("explanation did not open after answering")
	}
	if cmd == nil {
		t.Error("expected a poll command")
	}
}
