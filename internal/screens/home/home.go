package home

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
	quizscreen "github.com/chrisBokotaII/Nettranscongov2/internal/screens/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screens/stats"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/components"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/layout"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

// Deps carries the wired dependencies the home screen hands down to
// the screens it opens.
type Deps struct {
	Bank     *bank.Bank
	Sessions quiz.Slot
	History  *history.Aggregator
}

// savedLoadedMsg is sent when the saved-session lookup completes.
type savedLoadedMsg struct {
	State *quiz.SessionState
	Err   error
}

// focus cycle order on the home screen.
const (
	focusDifficulty = iota
	focusCategory
	focusCount
	focusMenu
)

// HomeScreen is the launch screen: mode menu plus quiz setup filters.
type HomeScreen struct {
	deps Deps

	menu       components.Menu
	difficulty components.Picker
	category   components.Picker
	count      components.TextInput
	focus      int

	saved  *quiz.SessionState
	nowFn  func() time.Time
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	difficulties := []string{string(bank.DifficultyMixed)}
	for _, d := range bank.Difficulties {
		difficulties = append(difficulties, string(d))
	}

	categories := []string{bank.CategoryMixed}
	for _, c := range bank.Categories {
		categories = append(categories, string(c))
	}

	h := &HomeScreen{
		deps:       deps,
		difficulty: components.NewPicker("Difficulty", difficulties),
		category:   components.NewPicker("Category  ", categories),
		count:      components.NewTextInput("all", true, 2),
		focus:      focusMenu,
		nowFn:      time.Now,
	}
	h.difficulty.SetValue(string(bank.DifficultyMixed))
	h.rebuildMenu()
	return h
}

// rebuildMenu recreates the menu items, including the resume entries
// when a saved session is present.
func (h *HomeScreen) rebuildMenu() {
	var items []components.MenuItem

	if h.saved != nil {
		items = append(items,
			components.MenuItem{Label: "RESUME SESSION", Action: h.resumeAction},
			components.MenuItem{Label: "DISCARD SAVED SESSION", Action: h.discardAction},
		)
	}

	items = append(items,
		components.MenuItem{Label: "STUDY MODE", Action: func() tea.Cmd { return h.startAction(quiz.ModeStudy) }},
		components.MenuItem{Label: "EXAM MODE", Action: func() tea.Cmd { return h.startAction(quiz.ModeExam) }},
		components.MenuItem{Label: "STATISTICS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(h.deps.History)}
			}
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if h.deps.Sessions == nil {
			return savedLoadedMsg{}
		}
		state, err := h.deps.Sessions.Load()
		return savedLoadedMsg{State: state, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filters"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedLoadedMsg:
		if msg.Err != nil {
			// A corrupt saved session is dropped rather than blocking
			// the home screen.
			if h.deps.Sessions != nil {
				_ = h.deps.Sessions.Clear()
			}
			h.errMsg = "Saved session could not be restored and was discarded."
			return h, nil
		}
		h.saved = msg.State
		h.rebuildMenu()
		return h, nil

	case tea.KeyMsg:
		h.errMsg = ""
		switch msg.String() {
		case "tab":
			h.focus = (h.focus + 1) % 4
			h.syncFocus()
			return h, nil
		case "shift+tab":
			h.focus = (h.focus + 3) % 4
			h.syncFocus()
			return h, nil
		}

		switch h.focus {
		case focusDifficulty:
			var cmd tea.Cmd
			h.difficulty, cmd = h.difficulty.Update(msg)
			return h, cmd
		case focusCategory:
			var cmd tea.Cmd
			h.category, cmd = h.category.Update(msg)
			return h, cmd
		case focusCount:
			var cmd tea.Cmd
			h.count, cmd = h.count.Update(msg)
			return h, cmd
		default:
			var cmd tea.Cmd
			h.menu, cmd = h.menu.Update(msg)
			return h, cmd
		}
	}

	return h, nil
}

func (h *HomeScreen) syncFocus() {
	h.difficulty.Focused = h.focus == focusDifficulty
	h.category.Focused = h.focus == focusCategory
	if h.focus == focusCount {
		h.count.Model.Focus()
	} else {
		h.count.Model.Blur()
	}
}

// drawQuestions filters and shuffles the bank by the current setup.
func (h *HomeScreen) drawQuestions() []bank.Question {
	difficulty := bank.Difficulty(h.difficulty.Value())
	category := h.category.Value()

	questions := h.deps.Bank.Filter(difficulty, category)
	rng := rand.New(rand.NewSource(h.nowFn().UnixNano()))
	questions = bank.Shuffle(questions, rng)

	if n, err := h.count.NumericValue(); err == nil && n > 0 && n < len(questions) {
		questions = questions[:n]
	}
	return questions
}

func (h *HomeScreen) startAction(mode quiz.Mode) tea.Cmd {
	questions := h.drawQuestions()
	if len(questions) == 0 {
		h.errMsg = "No questions match the selected filters."
		return nil
	}

	engine := quiz.NewEngine(h.deps.Sessions)
	if err := engine.StartNew(questions, mode, bank.Difficulty(h.difficulty.Value()), h.category.Value()); err != nil {
		h.errMsg = err.Error()
		return nil
	}

	h.saved = nil
	h.rebuildMenu()

	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(engine, h.deps.Sessions, h.deps.History),
		}
	}
}

func (h *HomeScreen) resumeAction() tea.Cmd {
	if h.saved == nil {
		return nil
	}

	engine := quiz.NewEngine(h.deps.Sessions)
	if err := engine.Resume(h.saved); err != nil {
		if h.deps.Sessions != nil {
			_ = h.deps.Sessions.Clear()
		}
		h.saved = nil
		h.rebuildMenu()
		h.errMsg = "Saved session could not be restored and was discarded."
		return nil
	}

	h.saved = nil
	h.rebuildMenu()

	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(engine, h.deps.Sessions, h.deps.History),
		}
	}
}

func (h *HomeScreen) discardAction() tea.Cmd {
	if h.deps.Sessions != nil {
		_ = h.deps.Sessions.Clear()
	}
	h.saved = nil
	h.rebuildMenu()
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("NetTrans Certification Trainer")
	subtitle := theme.Subtitle.Width(width).Render("A+ style practice: hardware, networking, security, troubleshooting")
	sections = append(sections, title+"\n"+subtitle)

	if h.saved != nil {
		when := time.UnixMilli(h.saved.Timestamp).Format("Jan 02, 15:04")
		banner := fmt.Sprintf("Saved %s session from %s — %d/%d answered",
			h.saved.Mode, when, h.saved.AnsweredCount(), len(h.saved.Questions))
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(banner)))
	}

	setup := h.difficulty.View() + "\n" +
		h.category.View() + "\n" +
		h.renderCountRow()
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Render(setup)))

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if recent := h.renderRecent(width); recent != "" {
		sections = append(sections, recent)
	}

	if h.errMsg != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(h.errMsg)))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderCountRow() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if h.focus == focusCount {
		label = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	}
	return label.Render("Questions ") + "  " + h.count.View()
}

// renderRecent shows the latest few results below the menu.
func (h *HomeScreen) renderRecent(width int) string {
	if h.deps.History == nil {
		return ""
	}
	records := h.deps.History.Records()
	if len(records) == 0 {
		return ""
	}
	if len(records) > 3 {
		records = records[:3]
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent results")))
	b.WriteString("\n")
	for _, r := range records {
		when := time.UnixMilli(r.Timestamp).Format("Jan 02, 15:04")
		line := fmt.Sprintf("%s  %-5s  %d/%d  %d%%", when, r.Mode, r.Score, r.Total, r.Percent())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
