package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screens/home"
	"github.com/chrisBokotaII/Nettranscongov2/internal/store"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/layout"
)

// Options carries the wired dependencies for the TUI.
type Options struct {
	Bank     *bank.Bank
	Sessions *store.SessionRepo
	History  *history.Aggregator
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	history *history.Aggregator
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Bank:     opts.Bank,
		Sessions: opts.Sessions,
		History:  opts.History,
	})
	return AppModel{
		router:  router.New(homeScreen),
		history: opts.History,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens: a running quiz confirms before
		// leaving instead of popping straight away.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
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

	attempts, best := 0, 0
	if m.history != nil {
		attempts = m.history.Len()
		best = m.history.BestScorePercent()
	}
	header := layout.RenderHeader(title, attempts, best, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
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
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
