package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	qz "github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screens/result"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/components"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/layout"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmQuit
	confirmRestart
)

// QuizScreen drives a running quiz through the session engine.
type QuizScreen struct {
	engine   *qz.Engine
	sessions qz.Slot
	history  *history.Aggregator

	options    components.OptionList
	confirm    components.Confirm
	confirming confirmKind
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for an engine that already holds a
// started or resumed session.
func New(engine *qz.Engine, sessions qz.Slot, hist *history.Aggregator) *QuizScreen {
	s := &QuizScreen{
		engine:   engine,
		sessions: sessions,
		history:  hist,
	}
	s.syncOptions()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.engine.State() != nil && s.engine.State().Mode == qz.ModeExam {
		return tickCmd()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	state := s.engine.State()
	if state == nil {
		return "Quiz"
	}
	if state.Mode == qz.ModeExam {
		return "Exam"
	}
	return "Study"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirming != confirmNone {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	state := s.engine.State()
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Options"},
	}
	if state != nil && state.Mode == qz.ModeStudy && !s.engine.Revealed() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Check"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "←", Description: "Previous"},
		layout.KeyHint{Key: "R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Save & exit"},
	)
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.engine.Done() {
		return s, nil
	}

	if res := s.engine.Tick(); res != nil {
		return s, s.finish(res)
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming != confirmNone {
		switch key {
		case "enter":
			kind := s.confirming
			confirmed := s.confirm.Yes
			s.confirming = confirmNone
			if !confirmed {
				return s, nil
			}
			switch kind {
			case confirmQuit:
				s.engine.Quit()
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			case confirmRestart:
				s.engine.Restart()
				s.syncOptions()
				return s, nil
			}
			return s, nil
		case "esc":
			s.confirming = confirmNone
			return s, nil
		}
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}

	state := s.engine.State()
	if state == nil || s.engine.Done() {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirming = confirmQuit
		s.confirm = components.NewConfirm("Leave the quiz? Your progress is saved.", "Leave", "Stay")
		return s, nil

	case "r":
		s.confirming = confirmRestart
		s.confirm = components.NewConfirm("Restart from the first question? Answers are cleared.", "Restart", "Cancel")
		return s, nil

	case "up", "k":
		if s.selectionLocked() {
			return s, nil
		}
		s.options.MoveUp()
		s.engine.SelectOption(s.options.CursorID())
		return s, nil

	case "down", "j":
		if s.selectionLocked() {
			return s, nil
		}
		s.options.MoveDown()
		s.engine.SelectOption(s.options.CursorID())
		return s, nil

	case "a", "b", "c", "d":
		if s.selectionLocked() {
			return s, nil
		}
		if s.engine.SelectOption(key) {
			s.options = components.NewOptionList(s.options.Options, key)
		}
		return s, nil

	case "enter":
		return s.handleEnter()

	case "left", "p":
		s.engine.Retreat()
		s.syncOptions()
		return s, nil
	}

	return s, nil
}

// selectionLocked reports whether the current question no longer
// accepts a different choice (study mode after the check).
func (s *QuizScreen) selectionLocked() bool {
	state := s.engine.State()
	return state != nil && state.Mode == qz.ModeStudy && s.engine.Revealed()
}

func (s *QuizScreen) handleEnter() (screen.Screen, tea.Cmd) {
	state := s.engine.State()

	if state.Mode == qz.ModeStudy && !s.engine.Revealed() {
		s.engine.CheckAnswer()
		return s, nil
	}

	if res := s.engine.Advance(); res != nil {
		return s, s.finish(res)
	}
	s.syncOptions()
	return s, nil
}

// finish records the result and swaps in the result screen. The
// restart closure re-runs the same question set as a fresh session.
func (s *QuizScreen) finish(res *qz.Result) tea.Cmd {
	if s.history != nil {
		_ = s.history.Append(history.NewRecord(res, time.Now()))
	}

	restart := func() tea.Cmd {
		engine := qz.NewEngine(s.sessions)
		if err := engine.StartNew(res.Questions, res.Mode, res.Difficulty, res.CategoryFilter); err != nil {
			return nil
		}
		return func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: New(engine, s.sessions, s.history),
			}
		}
	}

	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: result.New(res, restart),
		}
	}
}

// syncOptions rebuilds the option list for the current question,
// positioning the cursor on the committed or pending choice.
func (s *QuizScreen) syncOptions() {
	q := s.engine.CurrentQuestion()
	if q == nil {
		s.options = components.OptionList{}
		return
	}
	s.options = components.NewOptionList(q.Options, s.engine.Selected())
}

func (s *QuizScreen) View(width, height int) string {
	state := s.engine.State()
	if state == nil {
		return ""
	}

	if s.confirming != confirmNone {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.confirm.View())
	}

	q := s.engine.CurrentQuestion()
	if q == nil {
		return ""
	}

	var sections []string

	sections = append(sections, s.renderStatus(state, width))

	meta := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s • %s", q.Category, q.Difficulty))
	question := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Width(min(width-8, 72)).
		Render(q.Text)
	sections = append(sections, theme.Card.Render(meta+"\n\n"+question))

	sections = append(sections, s.options.View(s.engine.Selected(), q.CorrectAnswerID, s.engine.Revealed(), width-8))

	if state.Mode == qz.ModeStudy && s.engine.Revealed() {
		sections = append(sections, s.renderExplanation(q, width))
	}

	if s.engine.SaveErr() != nil {
		sections = append(sections, theme.Hint.Render("Progress could not be saved; resume may be unavailable."))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderStatus shows position, answered count and the exam countdown.
func (s *QuizScreen) renderStatus(state *qz.SessionState, width int) string {
	total := len(state.Questions)
	position := fmt.Sprintf("Question %d of %d", state.CurrentIdx+1, total)

	barWidth := min(width-8, 48)
	bar := components.NewProgressBar(position, float64(state.AnsweredCount())/float64(total), false, barWidth)
	line := bar.View()

	if state.Mode == qz.ModeExam {
		mins := state.Timer / 60
		secs := state.Timer % 60
		style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		if state.Timer < 60 {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		line += "   " + style.Render(fmt.Sprintf("⏱ %02d:%02d", mins, secs))
	}

	return line
}

func (s *QuizScreen) renderExplanation(q *bank.Question, width int) string {
	correct := s.engine.State().Answers[q.ID] == q.CorrectAnswerID

	verdict := theme.Correct.Render("Correct!")
	if !correct {
		opt := q.Option(q.CorrectAnswerID)
		answer := q.CorrectAnswerID
		if opt != nil {
			answer = opt.Text
		}
		verdict = theme.Incorrect.Render("Incorrect.") + " " +
			lipgloss.NewStyle().Foreground(theme.Text).Render("Answer: "+answer)
	}

	explanation := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(min(width-8, 72)).
		Render(q.Explanation)

	return verdict + "\n" + explanation
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
