// Package app wires the stores, services and screens into the root
// Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/config"
	"github.com/tanmay-g/prepdrill/internal/explain"
	"github.com/tanmay-g/prepdrill/internal/picker"
	"github.com/tanmay-g/prepdrill/internal/qset"
	"github.com/tanmay-g/prepdrill/internal/router"
	"github.com/tanmay-g/prepdrill/internal/screen"
	"github.com/tanmay-g/prepdrill/internal/screens/login"
	"github.com/tanmay-g/prepdrill/internal/screens/practice"
	"github.com/tanmay-g/prepdrill/internal/screens/welcome"
	sess "github.com/tanmay-g/prepdrill/internal/session"
	"github.com/tanmay-g/prepdrill/internal/store"
	"github.com/tanmay-g/prepdrill/internal/ui/layout"
)

// Deps carries the shared services the UI runs on.
type Deps struct {
	Cfg     config.Config
	Store   *store.Store
	Explain *explain.Service
}

// Model is the root Bubble Tea model.
type Model struct {
	router *router.Router
	width  int
	height int
}

func newModel(deps Deps) Model {
	welcomeDeps := welcome.Deps{
		Cfg:     deps.Cfg,
		Store:   deps.Store,
		Explain: deps.Explain,
		StartSession: func(username string, set *qset.Set, missing []string, strategy picker.Strategy) screen.Screen {
			ctrl := sess.New(sess.Options{
				Username:         username,
				SetName:          set.Name,
				Strategy:         strategy,
				Ranges:           deps.Cfg.Ranges,
				AssessmentWindow: deps.Cfg.AssessmentWindow,
				PassThreshold:    deps.Cfg.PassThreshold,
				QuestionTimeout:  deps.Cfg.QuestionTimeout,
				OptionLetters:    config.OptionLetters,
			}, deps.Store.Attempts(), picker.New(nil), set.Questions)
			return practice.New(ctrl, deps.Explain, username, set.Name, len(missing), config.OptionLetters)
		},
	}

	loginScreen := login.New(deps.Store.Users(), deps.Store.Invites(), func(username string) screen.Screen {
		return welcome.New(username, welcomeDeps)
	})

	return Model{
		router: router.New(loginScreen),
	}
}

func (m Model) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	username := ""
	lvl := 0
	if info, ok := active.(screen.UserInfoProvider); ok {
		username, lvl = info.UserInfo()
	}

	header := layout.RenderHeader(title, username, lvl, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinted, ok := active.(screen.KeyHintProvider); ok {
		if hints := hinted.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
