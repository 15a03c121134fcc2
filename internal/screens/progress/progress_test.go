package progress

import (
	"strings"
	"testing"

	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/store"
)

func attempt(t *testing.T, num int, choice, correct string) store.Attempt {
	t.Helper()
	return store.Attempt{
		Username:       "maya",
		SetName:        "amc10-2019",
		QuestionNumber: &num,
		Choice:         &choice,
		Correct:        correct,
	}
}

func TestComputeCoversEveryLevel(t *testing.T) {
	cfg := config.Default()
	s := New("maya", nil, cfg)

	// One attempt in the bottom band, one in the top band (Q21 is level 5).
	records := []store.Attempt{
		attempt(t, 3, "B", "B"),
		attempt(t, 21, "C", "A"),
	}
	s.Update(historyLoadedMsg{Attempts: records})

	if got, want := len(s.stats), cfg.Ranges.Levels(); got != want {
		t.Fatalf("got %d level rows, want %d", got, want)
	}
	for i, st := range s.stats {
		if st.Level != i+1 {
			t.Errorf("stats[%d].Level = %d, want %d", i, st.Level, i+1)
		}
	}

	bottom := s.stats[0]
	if bottom.Attempts != 1 || bottom.Correct != 1 {
		t.Errorf("level 1 tally = %d/%d, want 1/1", bottom.Correct, bottom.Attempts)
	}
	top := s.stats[len(s.stats)-1]
	if top.Attempts != 1 || top.Correct != 0 {
		t.Errorf("top level tally = %d/%d, want 0/1", top.Correct, top.Attempts)
	}
}

func TestViewShowsEveryLevelBar(t *testing.T) {
	cfg := config.Default()
	s := New("maya", nil, cfg)
	s.Update(historyLoadedMsg{Attempts: []store.Attempt{attempt(t, 21, "A", "A")}})

	out := s.View(100, 40)
	for lvl := 1; lvl <= cfg.Ranges.Levels(); lvl++ {
		label := "Level " + string(rune('0'+lvl))
		if !strings.Contains(out, label) {
			t.Errorf("view missing %q", label)
		}
	}
}
