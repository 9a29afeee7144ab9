package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

// Picker is a horizontal single-choice selector, used for difficulty
// and category filters. Left/right cycle through the choices.
type Picker struct {
	Label    string
	Choices  []string
	Selected int
	Focused  bool
}

// NewPicker creates a picker positioned on the first choice.
func NewPicker(label string, choices []string) Picker {
	return Picker{Label: label, Choices: choices}
}

// Update handles left/right cycling while focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		p.Selected--
		if p.Selected < 0 {
			p.Selected = len(p.Choices) - 1
		}
	case "right", "l":
		p.Selected++
		if p.Selected >= len(p.Choices) {
			p.Selected = 0
		}
	}

	return p, nil
}

// Value returns the currently selected choice.
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Choices) {
		return ""
	}
	return p.Choices[p.Selected]
}

// SetValue positions the picker on the given choice if present.
func (p *Picker) SetValue(choice string) {
	for i, c := range p.Choices {
		if c == choice {
			p.Selected = i
			return
		}
	}
}

// View renders the picker as a labelled row of segments.
func (p Picker) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if p.Focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	}

	parts := make([]string, 0, len(p.Choices))
	for i, c := range p.Choices {
		switch {
		case i == p.Selected && p.Focused:
			parts = append(parts, lipgloss.NewStyle().
				Background(theme.Primary).
				Foreground(theme.Text).
				Bold(true).
				Padding(0, 1).
				Render(c))
		case i == p.Selected:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Padding(0, 1).
				Render(c))
		default:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Padding(0, 1).
				Render(c))
		}
	}

	return labelStyle.Render(p.Label) + "  " + strings.Join(parts, " ")
}
