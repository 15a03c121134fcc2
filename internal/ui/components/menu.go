package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

// MenuItem is one row of a navigation menu. Label is re-evaluated on
// every render so rows can show live values. Activate runs on Enter.
// Cycle, when set, runs on left/right; Enter falls back to it so value
// rows stay reachable with Enter alone.
type MenuItem struct {
	Label    func() string
	Activate func() tea.Cmd
	Cycle    func(delta int) tea.Cmd
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "left", "h":
		if c := m.Items[m.Selected].Cycle; c != nil {
			return m, c(-1)
		}
	case "right", "l":
		if c := m.Items[m.Selected].Cycle; c != nil {
			return m, c(1)
		}
	case "enter":
		item := m.Items[m.Selected]
		if item.Activate != nil {
			return m, item.Activate()
		}
		if item.Cycle != nil {
			return m, item.Cycle(1)
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		if i == m.Selected {
			s += lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ "+item.Label()) + "\n"
		} else {
			s += lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    "+item.Label()) + "\n"
		}
	}
	return s
}
