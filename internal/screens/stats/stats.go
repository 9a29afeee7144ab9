package stats

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/components"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/layout"
	"github.com/chrisBokotaII/Nettranscongov2/internal/ui/theme"
)

// trendLength is how many recent results the trend row shows.
const trendLength = 20

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// StatsScreen is the performance dashboard over past results.
type StatsScreen struct {
	history    *history.Aggregator
	confirm    components.Confirm
	confirming bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(hist *history.Aggregator) *StatsScreen {
	return &StatsScreen{history: hist}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "C", Description: "Clear history"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirming {
		switch kmsg.String() {
		case "enter":
			confirmed := s.confirm.Yes
			s.confirming = false
			if confirmed {
				_ = s.history.Clear()
			}
			return s, nil
		case "esc":
			s.confirming = false
			return s, nil
		}
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(kmsg)
		return s, cmd
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "c":
		if s.history.Len() > 0 {
			s.confirming = true
			s.confirm = components.NewConfirm("Clear all recorded results?", "Clear", "Keep")
		}
		return s, nil
	}

	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.confirming {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.confirm.View())
	}

	if s.history.Len() == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No results yet. Finish a quiz to see your progress."))
	}

	var sections []string
	sections = append(sections, s.renderKPIs())
	sections = append(sections, s.renderTrend())
	sections = append(sections, s.renderCategories(width))
	sections = append(sections, s.renderRecent())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *StatsScreen) renderKPIs() string {
	kpi := func(label string, value string) string {
		return theme.Card.Render(
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) + "\n" +
				lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(value))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Attempts", fmt.Sprintf("%d", s.history.Len())),
		" ",
		kpi("Average", fmt.Sprintf("%d%%", s.history.AverageScorePercent())),
		" ",
		kpi("Best", fmt.Sprintf("%d%%", s.history.BestScorePercent())),
	)
}

// renderTrend draws recent scores as a sparkline, oldest to newest.
func (s *StatsScreen) renderTrend() string {
	points := s.history.TimeSeries(trendLength)
	if len(points) == 0 {
		return ""
	}

	var spark strings.Builder
	for _, p := range points {
		level := p.Percent * (len(sparkLevels) - 1) / 100
		if level < 0 {
			level = 0
		}
		if level >= len(sparkLevels) {
			level = len(sparkLevels) - 1
		}
		style := lipgloss.NewStyle().Foreground(theme.Secondary)
		if p.Mode == "exam" {
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		spark.WriteString(style.Render(string(sparkLevels[level])))
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Last %d results  ", len(points)))
	legend := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  study ") +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render("▆") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("  exam ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Render("▆")

	return label + spark.String() + legend
}

func (s *StatsScreen) renderCategories(width int) string {
	categoryStats := s.history.ByCategory()
	if len(categoryStats) == 0 {
		return ""
	}

	barWidth := min(width-20, 44)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("By category") + "\n")
	for _, cs := range categoryStats {
		label := fmt.Sprintf("%-16s", cs.Name)
		bar := components.NewProgressBar(label, float64(cs.AveragePercent)/100, true, barWidth)
		b.WriteString(bar.View())
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%d)", cs.Count)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *StatsScreen) renderRecent() string {
	records := s.history.Records()
	if len(records) > 5 {
		records = records[:5]
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent") + "\n")
	for _, r := range records {
		when := time.UnixMilli(r.Timestamp).Format("Jan 02, 15:04")
		line := fmt.Sprintf("%s  %-5s  %-9s  %d/%d  %d%%",
			when, r.Mode, r.Difficulty, r.Score, r.Total, r.Percent())
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
