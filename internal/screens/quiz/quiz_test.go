package quiz

import (
	"encoding/json"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	qz "github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
)

// mockSlot implements qz.Slot in memory.
type mockSlot struct {
	payload []byte
}

func (m *mockSlot) Save(state *qz.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.payload = data
	return nil
}

func (m *mockSlot) Load() (*qz.SessionState, error) {
	if m.payload == nil {
		return nil, nil
	}
	var state qz.SessionState
	if err := json.Unmarshal(m.payload, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *mockSlot) Clear() error {
	m.payload = nil
	return nil
}

// mockLog implements history.Log in memory.
type mockLog struct {
	records []history.Record
}

func (m *mockLog) Append(r history.Record) error {
	m.records = append([]history.Record{r}, m.records...)
	return nil
}

func (m *mockLog) All() ([]history.Record, error) {
	return m.records, nil
}

func (m *mockLog) Clear() error {
	m.records = nil
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestions(n int) []bank.Question {
	out := make([]bank.Question, n)
	for i := range out {
		out[i] = bank.Question{
			ID:         i + 1,
			Category:   bank.CategoryNetwork,
			Difficulty: bank.DifficultyEasy,
			Text:       fmt.Sprintf("question %d", i+1),
			Options: []bank.Option{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
			},
			CorrectAnswerID: "a",
			Explanation:     "a is right",
		}
	}
	return out
}

func testQuizScreen(t *testing.T, n int, mode qz.Mode) (*QuizScreen, *mockLog) {
	t.Helper()
	slot := &mockSlot{}
	engine := qz.NewEngine(slot)
	if err := engine.StartNew(testQuestions(n), mode, bank.DifficultyEasy, bank.CategoryMixed); err != nil {
		t.Fatal(err)
	}
	log := &mockLog{}
	return New(engine, slot, history.NewAggregator(log)), log
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := testQuizScreen(t, 2, qz.ModeStudy)
	if s.Title() != "Study" {
		t.Errorf("Title = %q, want Study", s.Title())
	}

	s, _ = testQuizScreen(t, 2, qz.ModeExam)
	if s.Title() != "Exam" {
		t.Errorf("Title = %q, want Exam", s.Title())
	}
}

func TestQuizScreen_StudyCheckAndAdvance(t *testing.T) {
	s, _ := testQuizScreen(t, 2, qz.ModeStudy)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*QuizScreen)

	if !ss.engine.Revealed() {
		t.Fatal("enter did not check the answer")
	}
	if ss.engine.State().Answers[1] != "a" {
		t.Errorf("Answers[1] = %q, want a", ss.engine.State().Answers[1])
	}

	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss = scr.(*QuizScreen)
	if ss.engine.State().CurrentIdx != 1 {
		t.Errorf("CurrentIdx = %d, want 1", ss.engine.State().CurrentIdx)
	}
}

func TestQuizScreen_SelectionNavigation(t *testing.T) {
	s, _ := testQuizScreen(t, 1, qz.ModeExam)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('j'))
	ss := scr.(*QuizScreen)
	if ss.engine.Selected() != "b" {
		t.Errorf("Selected = %q after moving down, want b", ss.engine.Selected())
	}

	scr, _ = scr.Update(keyPress('k'))
	ss = scr.(*QuizScreen)
	if ss.engine.Selected() != "a" {
		t.Errorf("Selected = %q after moving up, want a", ss.engine.Selected())
	}
}

func TestQuizScreen_FinishRecordsHistory(t *testing.T) {
	s, log := testQuizScreen(t, 1, qz.ModeExam)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	_, cmd := scr.Update(specialKey(tea.KeyEnter))

	if cmd == nil {
		t.Fatal("expected a navigation command after finishing")
	}
	if len(log.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(log.records))
	}
	if log.records[0].Score != 1 || log.records[0].Total != 1 {
		t.Errorf("recorded %d/%d, want 1/1", log.records[0].Score, log.records[0].Total)
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	s, _ := testQuizScreen(t, 2, qz.ModeStudy)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*QuizScreen)
	if ss.confirming != confirmQuit {
		t.Fatal("esc did not open the quit confirmation")
	}

	// Default is "stay": enter keeps the quiz running.
	scr, cmd := ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*QuizScreen)
	if ss.confirming != confirmNone {
		t.Error("confirmation still open")
	}
	if cmd != nil {
		t.Error("declined confirmation produced a command")
	}
	if ss.engine.Done() {
		t.Error("engine finished on declined quit")
	}

	// Confirming pops the screen and keeps the slot.
	scr, _ = ss.Update(specialKey(tea.KeyEscape))
	scr, _ = scr.Update(keyPress('y'))
	_, cmd = scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Error("confirmed quit produced no command")
	}
}

func TestQuizScreen_RestartConfirm(t *testing.T) {
	s, _ := testQuizScreen(t, 2, qz.ModeStudy)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	scr, _ = scr.Update(keyPress('r'))
	scr, _ = scr.Update(keyPress('y'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*QuizScreen)

	if ss.engine.State().CurrentIdx != 0 {
		t.Errorf("CurrentIdx = %d after restart, want 0", ss.engine.State().CurrentIdx)
	}
	if ss.engine.State().AnsweredCount() != 0 {
		t.Error("answers survived restart")
	}
}

func TestQuizScreen_ExamTimerTick(t *testing.T) {
	s, _ := testQuizScreen(t, 1, qz.ModeExam)

	var scr screen.Screen = s
	scr, cmd := scr.Update(timerTickMsg{})
	ss := scr.(*QuizScreen)

	if ss.engine.State().Timer != qz.ExamDurationSeconds-1 {
		t.Errorf("Timer = %d, want %d", ss.engine.State().Timer, qz.ExamDurationSeconds-1)
	}
	if cmd == nil {
		t.Error("tick did not reschedule itself")
	}
}

func TestQuizScreen_View(t *testing.T) {
	s, _ := testQuizScreen(t, 2, qz.ModeExam)
	if s.View(100, 30) == "" {
		t.Error("expected non-empty view")
	}

	s, _ = testQuizScreen(t, 2, qz.ModeStudy)
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if scr.View(100, 30) == "" {
		t.Error("expected non-empty revealed view")
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _ := testQuizScreen(t, 2, qz.ModeStudy)
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
