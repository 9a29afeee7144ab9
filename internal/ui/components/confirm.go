package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

// Confirm is a yes/no prompt rendered inline over a screen.
type Confirm struct {
	Prompt  string
	YesText string
	NoText  string
	Yes     bool
}

// NewConfirm creates a confirm prompt defaulting to "no".
func NewConfirm(prompt, yesText, noText string) Confirm {
	return Confirm{
		Prompt:  prompt,
		YesText: yesText,
		NoText:  noText,
	}
}

// Update handles left/right toggling. Enter is left to the caller so
// that each screen decides what confirming actually does.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h", "right", "l", "tab":
		c.Yes = !c.Yes
	case "y":
		c.Yes = true
	case "n":
		c.Yes = false
	}

	return c, nil
}

// View renders the prompt with the two choices.
func (c Confirm) View() string {
	yes := theme.ButtonInactive.Render(c.YesText)
	no := theme.ButtonActive.Render(c.NoText)
	if c.Yes {
		yes = theme.ButtonActive.Render(c.YesText)
		no = theme.ButtonInactive.Render(c.NoText)
	}

	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt) +
		"\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Center, yes, "   ", no)

	return theme.Card.Render(body)
}
