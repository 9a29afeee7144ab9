package home

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
	"github.com/chrisBokotaII/Nettranscongov2/internal/router"
	"github.com/chrisBokotaII/Nettranscongov2/internal/screen"
)

type mockSlot struct {
	payload []byte
	cleared int
}

func (m *mockSlot) Save(state *quiz.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.payload = data
	return nil
}

func (m *mockSlot) Load() (*quiz.SessionState, error) {
	if m.payload == nil {
		return nil, nil
	}
	var state quiz.SessionState
	if err := json.Unmarshal(m.payload, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *mockSlot) Clear() error {
	m.cleared++
	m.payload = nil
	return nil
}

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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testHome(t *testing.T) (*HomeScreen, *mockSlot) {
	t.Helper()
	b, err := bank.Load()
	if err != nil {
		t.Fatal(err)
	}
	slot := &mockSlot{}
	h := New(Deps{
		Bank:     b,
		Sessions: slot,
		History:  history.NewAggregator(&mockLog{}),
	})
	h.nowFn = func() time.Time { return time.Unix(1700000000, 0) }
	return h, slot
}

func TestHomeScreen_MenuWithoutSaved(t *testing.T) {
	h, _ := testHome(t)

	var scr screen.Screen = h
	scr, _ = scr.Update(savedLoadedMsg{})

	view := scr.View(100, 30)
	if strings.Contains(view, "RESUME SESSION") {
		t.Error("resume entry shown without a saved session")
	}
	for _, label := range []string{"STUDY MODE", "EXAM MODE", "STATISTICS", "QUIT"} {
		if !strings.Contains(view, label) {
			t.Errorf("menu is missing %q", label)
		}
	}
}

func TestHomeScreen_SavedSessionAddsResume(t *testing.T) {
	h, slot := testHome(t)

	engine := quiz.NewEngine(slot)
	if err := engine.StartNew(h.deps.Bank.Questions()[:3], quiz.ModeStudy, bank.DifficultyMixed, bank.CategoryMixed); err != nil {
		t.Fatal(err)
	}
	saved, err := slot.Load()
	if err != nil {
		t.Fatal(err)
	}

	var scr screen.Screen = h
	scr, _ = scr.Update(savedLoadedMsg{State: saved})

	view := scr.View(100, 40)
	if !strings.Contains(view, "RESUME SESSION") {
		t.Error("resume entry not shown for a saved session")
	}
	if !strings.Contains(view, "DISCARD SAVED SESSION") {
		t.Error("discard entry not shown for a saved session")
	}
}

func TestHomeScreen_CorruptSavedIsDiscarded(t *testing.T) {
	h, slot := testHome(t)
	slot.payload = []byte("{not json")

	var scr screen.Screen = h
	scr, _ = scr.Update(savedLoadedMsg{Err: errors.New("invalid session data")})

	if slot.cleared != 1 {
		t.Errorf("slot cleared %d times, want 1", slot.cleared)
	}
	if !strings.Contains(scr.View(100, 30), "could not be restored") {
		t.Error("discard notice not shown")
	}
}

func TestHomeScreen_StartStudyPushesQuiz(t *testing.T) {
	h, slot := testHome(t)
	h.Update(savedLoadedMsg{})

	// Menu focus is the default; the first entry is STUDY MODE.
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("selecting study mode produced no command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("expected a push to the quiz screen")
	}
	if slot.payload == nil {
		t.Error("starting a session did not persist it")
	}

	saved, err := slot.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Mode != quiz.ModeStudy {
		t.Errorf("Mode = %q, want %q", saved.Mode, quiz.ModeStudy)
	}
}

func TestHomeScreen_ResumePushesQuiz(t *testing.T) {
	h, slot := testHome(t)

	engine := quiz.NewEngine(slot)
	if err := engine.StartNew(h.deps.Bank.Questions()[:3], quiz.ModeExam, bank.DifficultyMixed, bank.CategoryMixed); err != nil {
		t.Fatal(err)
	}
	saved, err := slot.Load()
	if err != nil {
		t.Fatal(err)
	}
	h.Update(savedLoadedMsg{State: saved})

	// First entry is RESUME SESSION when a saved session exists.
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("resume produced no command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("expected a push to the quiz screen")
	}
}

func TestHomeScreen_DiscardClearsSlot(t *testing.T) {
	h, slot := testHome(t)

	engine := quiz.NewEngine(slot)
	if err := engine.StartNew(h.deps.Bank.Questions()[:3], quiz.ModeStudy, bank.DifficultyMixed, bank.CategoryMixed); err != nil {
		t.Fatal(err)
	}
	saved, err := slot.Load()
	if err != nil {
		t.Fatal(err)
	}
	h.Update(savedLoadedMsg{State: saved})

	// Move to DISCARD SAVED SESSION and select it.
	h.Update(keyPress('j'))
	h.Update(specialKey(tea.KeyEnter))

	if slot.payload != nil {
		t.Error("discard left the saved session in place")
	}
	if strings.Contains(h.View(100, 40), "RESUME SESSION") {
		t.Error("resume entry survived the discard")
	}
}

func TestHomeScreen_DrawQuestionsRespectsCount(t *testing.T) {
	h, _ := testHome(t)

	h.count.Model.SetValue("5")
	questions := h.drawQuestions()
	if len(questions) != 5 {
		t.Errorf("drew %d questions, want 5", len(questions))
	}

	h.count.Model.SetValue("")
	questions = h.drawQuestions()
	if len(questions) != h.deps.Bank.Len() {
		t.Errorf("drew %d questions, want the full bank of %d", len(questions), h.deps.Bank.Len())
	}
}

func TestHomeScreen_DrawQuestionsAppliesFilters(t *testing.T) {
	h, _ := testHome(t)
	h.difficulty.SetValue(string(bank.DifficultyEasy))
	h.category.SetValue(string(bank.CategoryNetwork))

	for _, q := range h.drawQuestions() {
		if q.Difficulty != bank.DifficultyEasy {
			t.Errorf("question %d has difficulty %q", q.ID, q.Difficulty)
		}
		if q.Category != bank.CategoryNetwork {
			t.Errorf("question %d has category %q", q.ID, q.Category)
		}
	}
}

func TestHomeScreen_TabCyclesFocus(t *testing.T) {
	h, _ := testHome(t)

	if h.focus != focusMenu {
		t.Fatalf("initial focus = %d, want menu", h.focus)
	}
	h.Update(specialKey(tea.KeyTab))
	if h.focus != focusDifficulty {
		t.Errorf("focus = %d after tab, want difficulty", h.focus)
	}
	if !h.difficulty.Focused {
		t.Error("difficulty picker not focused")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if h.focus != focusMenu {
		t.Errorf("focus = %d after shift+tab, want menu", h.focus)
	}
}
