package stats

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
)

type mockLog struct {
	records []history.Record
}

func (m *mockLog) Append(r history.Record) error {
	m.records = append([]history.Record{r}, m.records...)
	return nil
}

func (m *mockLog) All() ([]history.Record, error) { return m.records, nil }

func (m *mockLog) Clear() error {
	m.records = nil
	return nil
}

func record(score, total int, mode quiz.Mode, category string, at time.Time) history.Record {
	return history.NewRecord(&quiz.Result{
		Score:          score,
		Total:          total,
		Mode:           mode,
		Difficulty:     bank.DifficultyMixed,
		CategoryFilter: category,
	}, at)
}

func seededStats(t *testing.T, n int) (*StatsScreen, *mockLog) {
	t.Helper()
	log := &mockLog{}
	agg := history.NewAggregator(log)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		if err := agg.Append(record(7, 10, quiz.ModeExam, string(bank.CategoryNetwork), base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}
	return New(agg), log
}

func TestStatsScreen_EmptyState(t *testing.T) {
	s, _ := seededStats(t, 0)
	view := s.View(100, 40)
	if view == "" {
		t.Fatal("expected a view even with no history")
	}
	if !strings.Contains(view, "0") {
		t.Error("empty state does not show zeroed KPIs")
	}
}

func TestStatsScreen_ShowsKPIs(t *testing.T) {
	s, _ := seededStats(t, 3)
	view := s.View(100, 40)

	if !strings.Contains(view, "3") {
		t.Error("attempt count missing")
	}
	if !strings.Contains(view, "70%") {
		t.Error("average percentage missing")
	}
	if !strings.Contains(view, string(bank.CategoryNetwork)) {
		t.Error("category breakdown missing")
	}
}

func TestStatsScreen_ClearRequiresConfirmation(t *testing.T) {
	s, log := seededStats(t, 2)

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if !s.confirming {
		t.Fatal("c did not open the clear confirmation")
	}

	// Default answer keeps the history.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(log.records) != 2 {
		t.Fatalf("declined clear removed records, %d left", len(log.records))
	}

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(log.records) != 0 {
		t.Errorf("confirmed clear left %d records", len(log.records))
	}
}

func TestStatsScreen_ClearIgnoredWhenEmpty(t *testing.T) {
	s, _ := seededStats(t, 0)
	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if s.confirming {
		t.Error("clear confirmation opened with no history")
	}
}

func TestStatsScreen_EscPops(t *testing.T) {
	s, _ := seededStats(t, 1)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc did not pop the screen")
	}
}
