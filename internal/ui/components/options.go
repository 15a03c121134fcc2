package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tanmay-g/prepdrill/internal/ui/theme"
)

// OptionPicker selects one answer letter from a fixed alphabet by
// pressing the letter directly. Questions are rendered as images, so
// the options carry no text. The chosen letter can be changed until
// the question is advanced.
type OptionPicker struct {
	Letters []string
	Chosen  string
}

// NewOptionPicker creates a picker over the given letters.
func NewOptionPicker(letters []string) OptionPicker {
	return OptionPicker{Letters: letters}
}

// Update handles direct letter keys, case-insensitive. It returns the
// letter chosen this update, or empty string.
func (o OptionPicker) Update(msg tea.Msg) (OptionPicker, string) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, ""
	}

	upper := strings.ToUpper(kmsg.String())
	for _, letter := range o.Letters {
		if upper == letter {
			o.Chosen = letter
			return o, letter
		}
	}

	return o, ""
}

// Reset clears the selection for a new question.
func (o *OptionPicker) Reset() {
	o.Chosen = ""
}

// View renders the option letters.
func (o OptionPicker) View() string {
	var b strings.Builder
	for _, letter := range o.Letters {
		marker := " "
		if letter == o.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("  %s %s)", marker, letter)

		if letter == o.Chosen {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
