// Package login implements the sign-in and registration screen.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/auth"
	"github.com/tanmay-g/prepdrill/internal/router"
	"github.com/tanmay-g/prepdrill/internal/screen"
	"github.com/tanmay-g/prepdrill/internal/store"
	"github.com/tanmay-g/prepdrill/internal/ui/components"
	"github.com/tanmay-g/prepdrill/internal/ui/layout"
	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

type authResultMsg struct {
	Username string
	Err      error
}

// LoginScreen collects credentials and hands off to the next screen on
// success. Registration requires a valid invitation code.
type LoginScreen struct {
	users   *store.UserRepo
	invites *store.InviteRepo
	next    func(username string) screen.Screen

	mode     mode
	username components.TextInput
	password components.TextInput
	invite   components.TextInput
	focus    int
	errMsg   string
	busy     bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. next builds the screen shown after a
// successful login or registration.
func New(users *store.UserRepo, invites *store.InviteRepo, next func(username string) screen.Screen) *LoginScreen {
	s := &LoginScreen{
		users:    users,
		invites:  invites,
		next:     next,
		username: components.NewTextInput("username", 32),
		password: components.NewPasswordInput("password", 64),
		invite:   components.NewPasswordInput("invitation code", 64),
	}
	s.password.Blur()
	s.invite.Blur()
	return s
}

func (s *LoginScreen) Title() string {
	if s.mode == modeRegister {
		return "Register"
	}
	return "Sign In"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.username.Focus()
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	toggle := "Register"
	if s.mode == modeRegister {
		toggle = "Sign in"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) fieldCount() int {
	if s.mode == modeRegister {
		return 3
	}
	return 2
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.password.Model.SetValue("")
			return s, nil
		}
		nextScreen := s.next(msg.Username)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: nextScreen}
		}

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			delta := 1
			if msg.String() == "shift+tab" || msg.String() == "up" {
				delta = s.fieldCount() - 1
			}
			s.focus = (s.focus + delta) % s.fieldCount()
			return s, s.focusField()
		case "ctrl+r":
			if s.mode == modeLogin {
				s.mode = modeRegister
			} else {
				s.mode = modeLogin
			}
			s.errMsg = ""
			if s.focus >= s.fieldCount() {
				s.focus = 0
			}
			return s, s.focusField()
		case "enter":
			return s.submit()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.username, cmd = s.username.Update(msg)
	case 1:
		s.password, cmd = s.password.Update(msg)
	case 2:
		s.invite, cmd = s.invite.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) focusField() tea.Cmd {
	s.username.Blur()
	s.password.Blur()
	s.invite.Blur()
	switch s.focus {
	case 0:
		return s.username.Focus()
	case 1:
		return s.password.Focus()
	default:
		return s.invite.Focus()
	}
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	username := strings.TrimSpace(s.username.Value())
	password := s.password.Value()
	code := strings.TrimSpace(s.invite.Value())

	if username == "" || password == "" {
		s.errMsg = "Please enter both username and password."
		return s, nil
	}
	if s.mode == modeRegister && code == "" {
		s.errMsg = "An invitation code is required to register."
		return s, nil
	}

	s.busy = true
	s.errMsg = ""

	register := s.mode == modeRegister
	return s, func() tea.Msg {
		ctx := context.Background()
		if register {
			return authResultMsg{Username: username, Err: s.register(ctx, username, password, code)}
		}
		return authResultMsg{Username: username, Err: s.login(ctx, username, password)}
	}
}

func (s *LoginScreen) login(ctx context.Context, username, password string) error {
	hash, err := s.users.PasswordHash(ctx, username)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return err
	}
	if err != nil || !auth.VerifyPassword(hash, password) {
		return errors.New("incorrect username or password")
	}
	return nil
}

func (s *LoginScreen) register(ctx context.Context, username, password, code string) error {
	valid, err := s.invites.Validate(ctx, code)
	if err != nil {
		return err
	}
	if !valid {
		return errors.New("invitation code is invalid or already used")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, username, hash); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return errors.New("that username is taken")
		}
		return err
	}
	if _, err := s.invites.MarkUsed(ctx, code, username); err != nil {
		return err
	}
	return nil
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	heading := "Sign in to continue"
	if s.mode == modeRegister {
		heading = "Create your account"
	}
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n\n")

	field := func(label string, input components.TextInput, focused bool) string {
		labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return labelStyle.Render(label) + "\n" + input.View()
	}

	form := field("Username", s.username, s.focus == 0) + "\n\n" +
		field("Password", s.password, s.focus == 1)
	if s.mode == modeRegister {
		form += "\n\n" + field("Invitation code", s.invite, s.focus == 2)
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(40).Render(form)))
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Subtitle.Width(width).Render("Checking..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
