package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/picker"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testScreen(t *testing.T) *WelcomeScreen {
	t.Helper()
	s := New("maya", Deps{Cfg: config.Default()})
	s.Update(setsLoadedMsg{Names: []string{"amc10-2019", "amc10-2020"}})
	return s
}

func TestMenuCyclesQuestionSet(t *testing.T) {
	s := testScreen(t)

	s.Update(keyPress('j')) // move to the set row
	if !strings.Contains(s.View(100, 40), "amc10-2019") {
		t.Fatal("expected first set selected initially")
	}

	s.Update(keyPress('l'))
	if got := s.setName(); got != "amc10-2020" {
		t.Errorf("after cycle right, set = %q, want amc10-2020", got)
	}
	s.Update(keyPress('h'))
	if got := s.setName(); got != "amc10-2019" {
		t.Errorf("after cycle left, set = %q, want amc10-2019", got)
	}
}

func TestMenuEnterTogglesStrategy(t *testing.T) {
	s := testScreen(t)
	if s.strategy != picker.StrategyAdaptive {
		t.Fatalf("default strategy = %v, want adaptive", s.strategy)
	}

	s.Update(keyPress('j'))
	s.Update(keyPress('j')) // strategy row
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.strategy != picker.StrategyRandom {
		t.Errorf("strategy after enter = %v, want random", s.strategy)
	}
}

func TestMenuQuit(t *testing.T) {
	s := testScreen(t)

	for i := 0; i < 4; i++ {
		s.Update(keyPress('j'))
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from the quit row")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit row did not emit tea.QuitMsg")
	}
}

func TestStartWithoutSetsShowsError(t *testing.T) {
	s := New("maya", Deps{Cfg: config.Default()})
	s.Update(setsLoadedMsg{Names: nil})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("start with no sets should not produce a command")
	}
	if s.errMsg == "" {
		t.Error("expected an error message when no sets are available")
	}
}
