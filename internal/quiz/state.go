package quiz

import (
	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
)

// Mode selects how a session behaves: study gives per-question feedback,
// exam defers all feedback to the end and runs a countdown.
type Mode string

const (
	ModeStudy Mode = "study"
	ModeExam  Mode = "exam"
)

// ExamDurationSeconds is the fixed exam countdown.
const ExamDurationSeconds = 600

// SessionState is the full persisted state of one quiz attempt. Its JSON
// form is the session-slot payload written to the store, so field tags are
// part of the on-disk contract.
type SessionState struct {
	// Questions is the drawn working set, frozen for this attempt.
	Questions []bank.Question `json:"questions"`

	// Answers maps question id to the committed option id.
	Answers map[int]string `json:"answers"`

	// CurrentIdx is the cursor, always in [0, len(Questions)).
	CurrentIdx int `json:"currentIdx"`

	Mode Mode `json:"mode"`

	// Timer is the seconds remaining; meaningful in exam mode only.
	Timer int `json:"timer"`

	// CategoryFilter and Difficulty record the selection criteria used to
	// draw Questions, kept for display and for the history record.
	CategoryFilter string          `json:"categoryFilter"`
	Difficulty     bank.Difficulty `json:"difficulty"`

	// Timestamp is the last mutation time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// CurrentQuestion returns the question under the cursor.
func (s *SessionState) CurrentQuestion() *bank.Question {
	return &s.Questions[s.CurrentIdx]
}

// OnLastQuestion reports whether the cursor is on the final question.
func (s *SessionState) OnLastQuestion() bool {
	return s.CurrentIdx == len(s.Questions)-1
}

// AnsweredCount returns how many questions have a committed answer.
func (s *SessionState) AnsweredCount() int {
	return len(s.Answers)
}

// validate checks the structural shape of a restored session. It does not
// second-guess the content beyond what the engine needs to operate safely.
func (s *SessionState) validate() error {
	if s == nil || len(s.Questions) == 0 {
		return ErrInvalidSessionData
	}
	if s.Mode != ModeStudy && s.Mode != ModeExam {
		return ErrInvalidSessionData
	}
	if s.CurrentIdx < 0 || s.CurrentIdx >= len(s.Questions) {
		return ErrInvalidSessionData
	}
	ids := make(map[int]bool, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		if len(q.Options) < 2 || q.Option(q.CorrectAnswerID) == nil {
			return ErrInvalidSessionData
		}
		ids[q.ID] = true
	}
	for qid := range s.Answers {
		if !ids[qid] {
			return ErrInvalidSessionData
		}
	}
	return nil
}

// Result is the terminal outcome of a finished session.
type Result struct {
	Score          int
	Total          int
	Answers        map[int]string
	Questions      []bank.Question
	Mode           Mode
	Difficulty     bank.Difficulty
	CategoryFilter string
}

// Percent returns the score as a rounded integer percentage.
func (r Result) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return int(float64(r.Score)/float64(r.Total)*100 + 0.5)
}
