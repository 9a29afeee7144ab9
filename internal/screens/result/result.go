package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/components"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/layout"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

// ResultScreen shows the final score and a per-question review.
type ResultScreen struct {
	res     *quiz.Result
	restart func() tea.Cmd
	cursor  int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen. The restart callback starts a fresh
// run over the same questions.
func New(res *quiz.Result, restart func() tea.Cmd) *ResultScreen {
	return &ResultScreen{res: res, restart: restart}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
		{Key: "R", Description: "Try again"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.res.Questions)-1 {
			s.cursor++
		}
	case "r":
		if s.restart != nil {
			return s, s.restart()
		}
	case "esc", "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, s.renderScoreCard(width))
	sections = append(sections, s.renderReview(width, height))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *ResultScreen) renderScoreCard(width int) string {
	percent := s.res.Percent()

	headline := theme.Title.Render(fmt.Sprintf("%d / %d correct", s.res.Score, s.res.Total))

	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s • %s • %s", s.res.Mode, s.res.Difficulty, s.res.CategoryFilter))

	barWidth := min(width-12, 40)
	bar := components.NewProgressBar("", float64(percent)/100, true, barWidth)

	verdict := theme.Correct.Render("Passed — exam-day ready!")
	if percent < 70 {
		verdict = theme.Incorrect.Render("Below the 70% pass mark — keep practicing.")
	}

	body := lipgloss.JoinVertical(lipgloss.Center, headline, meta, "", bar.View(), "", verdict)
	return theme.Card.Render(body)
}

// renderReview lists every question with the chosen and correct
// answers, windowed around the cursor so long runs fit the screen.
func (s *ResultScreen) renderReview(width, height int) string {
	if len(s.res.Questions) == 0 {
		return ""
	}

	// Rough budget: two lines per entry plus the expanded explanation.
	visible := (height - 14) / 2
	if visible < 3 {
		visible = 3
	}

	start := 0
	if s.cursor >= visible {
		start = s.cursor - visible + 1
	}
	end := start + visible
	if end > len(s.res.Questions) {
		end = len(s.res.Questions)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		q := s.res.Questions[i]
		chosen := s.res.Answers[q.ID]
		correct := q.IsCorrect(chosen)

		mark := theme.Correct.Render("✓")
		if !correct {
			mark = theme.Incorrect.Render("✗")
		}
		if chosen == "" {
			mark = lipgloss.NewStyle().Foreground(theme.TextDim).Render("–")
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.cursor {
			prefix = "▸ "
			style = style.Bold(true)
		}

		text := q.Text
		maxText := width - 16
		if maxText > 8 && len(text) > maxText {
			text = text[:maxText-1] + "…"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, mark, style.Render(text)))

		if i == s.cursor {
			b.WriteString(s.renderDetail(&q, chosen, width))
		}
	}

	return b.String()
}

func (s *ResultScreen) renderDetail(q *bank.Question, chosen string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	chosenText := "not answered"
	if opt := q.Option(chosen); opt != nil {
		chosenText = opt.Text
	}
	correctText := q.CorrectAnswerID
	if opt := q.Option(q.CorrectAnswerID); opt != nil {
		correctText = opt.Text
	}

	wrap := lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-12, 68))

	detail := dim.Render("    Your answer: ") + chosenText + "\n" +
		dim.Render("    Correct:     ") + correctText + "\n" +
		"    " + wrap.Render(q.Explanation) + "\n"
	return detail
}
