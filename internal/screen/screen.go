package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tanmay-g/prepdrill/internal/ui/layout"
)

// Screen is the interface every application screen implements.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// UserInfoProvider is an optional interface for screens that know the
// logged-in user. The header shows the username and, when nonzero, the
// level.
type UserInfoProvider interface {
	UserInfo() (username string, level int)
}
