// Package welcome implements the post-login landing screen where the
// learner picks a question set and selection mode.
package welcome

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/explain"
	"github.com/tanmay-g/prepdrill/internal/picker"
	"github.com/tanmay-g/prepdrill/internal/qset"
	"github.com/tanmay-g/prepdrill/internal/router"
	"github.com/tanmay-g/prepdrill/internal/screen"
	"github.com/tanmay-g/prepdrill/internal/screens/progress"
	"github.com/tanmay-g/prepdrill/internal/store"
	"github.com/tanmay-g/prepdrill/internal/ui/components"
	"github.com/tanmay-g/prepdrill/internal/ui/layout"
	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

// Deps carries the shared services the welcome screen wires into the
// screens it launches.
type Deps struct {
	Cfg     config.Config
	Store   *store.Store
	Explain *explain.Service

	// StartSession builds the practice screen for a loaded set.
	// missing lists image files referenced by metadata but absent on disk.
	StartSession func(username string, set *qset.Set, missing []string, strategy picker.Strategy) screen.Screen
}

type setsLoadedMsg struct {
	Names []string
	Err   error
}

type setReadyMsg struct {
	Screen screen.Screen
	Err    error
}

// WelcomeScreen greets the learner and starts practice sessions.
type WelcomeScreen struct {
	username string
	deps     Deps
	phrase   string
	menu     components.Menu

	sets     []string
	setIdx   int
	strategy picker.Strategy
	errMsg   string
	loading  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome screen for a logged-in user.
func New(username string, deps Deps) *WelcomeScreen {
	s := &WelcomeScreen{
		username: username,
		deps:     deps,
		phrase:   randomPhrase(),
		strategy: picker.StrategyAdaptive,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:    func() string { return "Start Practice" },
			Activate: s.startPractice,
		},
		{
			Label: func() string {
				return fmt.Sprintf("Question set:  ◂ %s ▸", s.setName())
			},
			Cycle: s.cycleSet,
		},
		{
			Label: func() string {
				return fmt.Sprintf("Selection:     ◂ %s ▸", s.strategyName())
			},
			Cycle: s.cycleStrategy,
		},
		{
			Label:    func() string { return "View Progress" },
			Activate: s.openProgress,
		},
		{
			Label:    func() string { return "Quit" },
			Activate: func() tea.Cmd { return tea.Quit },
		},
	})
	return s
}

func (s *WelcomeScreen) Title() string {
	return "Welcome"
}

// UserInfo feeds the header badge.
func (s *WelcomeScreen) UserInfo() (string, int) {
	return s.username, 0
}

func (s *WelcomeScreen) Init() tea.Cmd {
	dir := s.deps.Cfg.QuestionDir
	return func() tea.Msg {
		names, err := qset.ListSets(dir)
		return setsLoadedMsg{Names: names, Err: err}
	}
}

func (s *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "◂▸", Description: "Change"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("Cannot list question sets: %v", msg.Err)
			return s, nil
		}
		s.sets = msg.Names
		if len(s.sets) == 0 {
			s.errMsg = fmt.Sprintf("No question sets found under %s", s.deps.Cfg.QuestionDir)
		}
		return s, nil

	case setReadyMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: msg.Screen}
		}

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *WelcomeScreen) setName() string {
	if len(s.sets) == 0 {
		return "(none found)"
	}
	return s.sets[s.setIdx]
}

func (s *WelcomeScreen) strategyName() string {
	if s.strategy == picker.StrategyRandom {
		return "Random"
	}
	return "Adaptive"
}

func (s *WelcomeScreen) cycleSet(delta int) tea.Cmd {
	if n := len(s.sets); n > 0 {
		s.setIdx = (s.setIdx + delta + n) % n
	}
	return nil
}

func (s *WelcomeScreen) cycleStrategy(int) tea.Cmd {
	if s.strategy == picker.StrategyAdaptive {
		s.strategy = picker.StrategyRandom
	} else {
		s.strategy = picker.StrategyAdaptive
	}
	return nil
}

func (s *WelcomeScreen) openProgress() tea.Cmd {
	p := progress.New(s.username, s.deps.Store.Attempts(), s.deps.Cfg)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: p}
	}
}

func (s *WelcomeScreen) startPractice() tea.Cmd {
	if len(s.sets) == 0 {
		s.errMsg = "No question sets available."
		return nil
	}

	s.loading = true
	s.errMsg = ""
	dir := s.deps.Cfg.QuestionDir
	name := s.sets[s.setIdx]
	strategy := s.strategy

	return func() tea.Msg {
		set, missing, err := qset.LoadSet(filepath.Join(dir, name))
		if err != nil {
			return setReadyMsg{Err: fmt.Errorf("load %s: %w", name, err)}
		}
		return setReadyMsg{Screen: s.deps.StartSession(s.username, set, missing, strategy)}
	}
}

func (s *WelcomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Welcome, %s!", s.username)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(s.phrase))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.loading {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render("Loading question set..."))
	} else if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
