// Package quiz implements the session engine: one quiz attempt from start
// to finish or quit, with the persisted session slot kept in step with
// every state change so the attempt survives interruption.
package quiz

import (
	"errors"
	"time"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
)

var (
	// ErrEmptyQuestionSet is returned when a filter combination yields no
	// questions. Callers must surface this instead of starting a session.
	ErrEmptyQuestionSet = errors.New("no questions match the requested filters")

	// ErrInvalidSessionData is returned when a persisted session payload
	// does not match the expected shape. The slot should be treated as void.
	ErrInvalidSessionData = errors.New("saved session data is malformed")
)

// Slot is the persistent store handle for the single active session.
type Slot interface {
	// Save overwrites the slot with the full session state.
	Save(state *SessionState) error

	// Load returns the saved state, or (nil, nil) when the slot is empty.
	Load() (*SessionState, error)

	// Clear empties the slot.
	Clear() error
}

// Engine owns one quiz attempt. It is not reusable: once the session
// finishes, is quit, or is discarded, a new Engine must be created.
type Engine struct {
	slot  Slot
	state *SessionState

	// selected is the in-flight option for the current question. It only
	// enters state.Answers when committed (check in study, advance/tick
	// in exam), so it is never persisted on its own.
	selected string

	// revealed is true once study-mode feedback is shown for the current
	// question. Selection is locked while revealed.
	revealed bool

	done    bool
	saveErr error
	now     func() time.Time
}

// NewEngine creates an engine writing through the given slot.
func NewEngine(slot Slot) *Engine {
	return &Engine{slot: slot, now: time.Now}
}

// StartNew begins a fresh attempt over the drawn question set. Any prior
// persisted session is discarded first.
func (e *Engine) StartNew(questions []bank.Question, mode Mode, difficulty bank.Difficulty, categoryFilter string) error {
	if len(questions) == 0 {
		return ErrEmptyQuestionSet
	}

	if err := e.slot.Clear(); err != nil {
		e.saveErr = err
	}

	timer := 0
	if mode == ModeExam {
		timer = ExamDurationSeconds
	}
	e.state = &SessionState{
		Questions:      questions,
		Answers:        make(map[int]string),
		CurrentIdx:     0,
		Mode:           mode,
		Timer:          timer,
		CategoryFilter: categoryFilter,
		Difficulty:     difficulty,
	}
	e.selected = ""
	e.revealed = false
	e.done = false
	e.persist()
	return nil
}

// Resume adopts a previously persisted session. The payload is validated
// structurally; anything malformed fails with ErrInvalidSessionData and the
// engine adopts nothing.
func (e *Engine) Resume(saved *SessionState) error {
	if err := saved.validate(); err != nil {
		return err
	}
	if saved.Answers == nil {
		saved.Answers = make(map[int]string)
	}
	if saved.Mode == ModeExam && saved.Timer < 0 {
		saved.Timer = 0
	}
	e.state = saved
	e.done = false
	e.syncCursor()
	e.persist()
	return nil
}

// SelectOption records a tentative choice for the current question.
// In study mode selection is locked once the question has been checked.
// Returns true if the selection was accepted.
func (e *Engine) SelectOption(optionID string) bool {
	if e.done || e.state == nil {
		return false
	}
	if e.state.Mode == ModeStudy && e.revealed {
		return false
	}
	if e.state.CurrentQuestion().Option(optionID) == nil {
		return false
	}
	e.selected = optionID
	return true
}

// CheckAnswer commits the selected option and reveals study-mode feedback.
// No-op without a selection, and idempotent once revealed.
func (e *Engine) CheckAnswer() bool {
	if e.done || e.state == nil || e.state.Mode != ModeStudy {
		return false
	}
	if e.revealed || e.selected == "" {
		return false
	}
	e.state.Answers[e.state.CurrentQuestion().ID] = e.selected
	e.revealed = true
	e.persist()
	return true
}

// Advance moves to the next question, or finishes on the last one. In exam
// mode a pending selection is committed first; in study mode advancing is
// only possible after the answer has been revealed. Returns a non-nil
// Result when the session finished.
func (e *Engine) Advance() *Result {
	if e.done || e.state == nil {
		return nil
	}
	switch e.state.Mode {
	case ModeStudy:
		if !e.revealed {
			return nil
		}
	case ModeExam:
		if e.selected != "" {
			e.state.Answers[e.state.CurrentQuestion().ID] = e.selected
		}
	}

	if e.state.OnLastQuestion() {
		return e.finish()
	}
	e.state.CurrentIdx++
	e.syncCursor()
	e.persist()
	return nil
}

// Retreat moves to the previous question. No-op at the first question.
// Committed answers are never discarded.
func (e *Engine) Retreat() {
	if e.done || e.state == nil || e.state.CurrentIdx == 0 {
		return
	}
	e.state.CurrentIdx--
	e.syncCursor()
	e.persist()
}

// Restart resets progress over the same drawn question set: cursor back to
// zero, answers wiped, timer refilled. The questions are not re-shuffled.
func (e *Engine) Restart() {
	if e.done || e.state == nil {
		return
	}
	e.state.CurrentIdx = 0
	e.state.Answers = make(map[int]string)
	if e.state.Mode == ModeExam {
		e.state.Timer = ExamDurationSeconds
	}
	e.selected = ""
	e.revealed = false
	e.persist()
}

// Tick counts down one second of exam time. When the timer reaches zero the
// session finishes with whatever is committed, including the in-flight
// selection for the current question. Returns a non-nil Result on expiry.
func (e *Engine) Tick() *Result {
	if e.done || e.state == nil || e.state.Mode != ModeExam {
		return nil
	}
	if e.state.Timer > 0 {
		e.state.Timer--
	}
	if e.state.Timer <= 0 {
		e.state.Timer = 0
		if e.selected != "" {
			e.state.Answers[e.state.CurrentQuestion().ID] = e.selected
		}
		return e.finish()
	}
	e.persist()
	return nil
}

// finish scores the attempt, clears the slot, and renders the engine done.
func (e *Engine) finish() *Result {
	score := 0
	for i := range e.state.Questions {
		q := &e.state.Questions[i]
		if q.IsCorrect(e.state.Answers[q.ID]) {
			score++
		}
	}
	if err := e.slot.Clear(); err != nil {
		e.saveErr = err
	}
	e.done = true
	return &Result{
		Score:          score,
		Total:          len(e.state.Questions),
		Answers:        e.state.Answers,
		Questions:      e.state.Questions,
		Mode:           e.state.Mode,
		Difficulty:     e.state.Difficulty,
		CategoryFilter: e.state.CategoryFilter,
	}
}

// Quit suspends the attempt: the persisted slot is deliberately left intact
// so the session can be resumed later. The engine is done afterwards.
func (e *Engine) Quit() {
	e.done = true
}

// Discard abandons the attempt without scoring and clears the slot.
func (e *Engine) Discard() {
	if err := e.slot.Clear(); err != nil {
		e.saveErr = err
	}
	e.done = true
}

// syncCursor restores the transient view of the question under the cursor:
// a previously committed answer becomes the selection, and in study mode a
// previously answered question re-shows in its revealed state.
func (e *Engine) syncCursor() {
	answer, answered := e.state.Answers[e.state.CurrentQuestion().ID]
	e.selected = answer
	e.revealed = e.state.Mode == ModeStudy && answered
}

// persist writes the full state through the slot. A write failure is
// remembered and reported, but the in-memory state stays authoritative.
func (e *Engine) persist() {
	e.state.Timestamp = e.now().UnixMilli()
	if err := e.slot.Save(e.state); err != nil {
		e.saveErr = err
		return
	}
	e.saveErr = nil
}

// State exposes the current session state for rendering.
func (e *Engine) State() *SessionState { return e.state }

// CurrentQuestion returns the question under the cursor, nil without a session.
func (e *Engine) CurrentQuestion() *bank.Question {
	if e.state == nil {
		return nil
	}
	return e.state.CurrentQuestion()
}

// Selected returns the in-flight option id for the current question.
func (e *Engine) Selected() string { return e.selected }

// Revealed reports whether study-mode feedback is shown for the current question.
func (e *Engine) Revealed() bool { return e.revealed }

// Done reports whether the engine has reached a terminal state.
func (e *Engine) Done() bool { return e.done }

// SaveErr returns the most recent persistence failure, nil if the last
// write succeeded.
func (e *Engine) SaveErr() error { return e.saveErr }
