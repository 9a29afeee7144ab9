package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

// OptionList renders the answer options of a question. Unlike a
// self-contained selector, it is driven entirely by the caller: the
// cursor, the committed choice and the reveal state live in the quiz
// engine, not here.
type OptionList struct {
	Options []bank.Option
	Cursor  int
}

// NewOptionList creates an option list positioned on the given choice,
// or on the first option when selectedID is unknown.
func NewOptionList(options []bank.Option, selectedID string) OptionList {
	cursor := 0
	for i, opt := range options {
		if opt.ID == selectedID {
			cursor = i
			break
		}
	}
	return OptionList{Options: options, Cursor: cursor}
}

// MoveUp moves the cursor one option up.
func (o *OptionList) MoveUp() {
	if o.Cursor > 0 {
		o.Cursor--
	}
}

// MoveDown moves the cursor one option down.
func (o *OptionList) MoveDown() {
	if o.Cursor < len(o.Options)-1 {
		o.Cursor++
	}
}

// CursorID returns the option id under the cursor.
func (o OptionList) CursorID() string {
	if o.Cursor < 0 || o.Cursor >= len(o.Options) {
		return ""
	}
	return o.Options[o.Cursor].ID
}

// View renders the options. Before reveal the cursor and the selected
// option are highlighted; after reveal the correct option is green, a
// wrong choice red and the rest dimmed.
func (o OptionList) View(selectedID, correctID string, revealed bool, width int) string {
	var b strings.Builder

	for i, opt := range o.Options {
		label := strings.ToUpper(opt.ID)
		prefix := "  "
		if i == o.Cursor && !revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt.Text)
		if width > 4 && lipgloss.Width(line) > width {
			line = line[:width-1] + "…"
		}

		switch {
		case revealed && opt.ID == correctID:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line))
		case revealed && opt.ID == selectedID:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line))
		case revealed:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		case opt.ID == selectedID:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		case i == o.Cursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
