package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleState() *quiz.SessionState {
	return &quiz.SessionState{
		Questions: []bank.Question{
			{
				ID:         1,
				Category:   bank.CategoryHardware,
				Difficulty: bank.DifficultyEasy,
				Text:       "What does PSU stand for?",
				Options: []bank.Option{
					{ID: "a", Text: "Power Supply Unit"},
					{ID: "b", Text: "Primary Storage Unit"},
				},
				CorrectAnswerID: "a",
				Explanation:     "The PSU converts mains power.",
			},
		},
		Answers:        map[int]string{1: "a"},
		CurrentIdx:     0,
		Mode:           quiz.ModeExam,
		Timer:          540,
		CategoryFilter: "Mixed",
		Difficulty:     bank.DifficultyMixed,
		Timestamp:      1700000000000,
	}
}

func TestSessionRepo(t *testing.T) {
	t.Run("empty slot loads nil", func(t *testing.T) {
		repo := openTestStore(t).SessionRepo()
		state, err := repo.Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if state != nil {
			t.Errorf("Load() = %+v, want nil", state)
		}
	})

	t.Run("save and load round trip", func(t *testing.T) {
		repo := openTestStore(t).SessionRepo()
		want := sampleState()
		if err := repo.Save(want); err != nil {
			t.Fatalf("Save() error: %v", err)
		}

		got, err := repo.Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if got == nil {
			t.Fatal("Load() = nil after save")
		}
		if got.Mode != want.Mode || got.Timer != want.Timer || got.CurrentIdx != want.CurrentIdx {
			t.Errorf("core fields differ: %+v", got)
		}
		if got.Answers[1] != "a" {
			t.Errorf("Answers[1] = %q", got.Answers[1])
		}
		if len(got.Questions) != 1 || got.Questions[0].Text != want.Questions[0].Text {
			t.Errorf("questions differ: %+v", got.Questions)
		}
		if got.Timestamp != want.Timestamp {
			t.Errorf("Timestamp = %d, want %d", got.Timestamp, want.Timestamp)
		}
	})

	t.Run("save overwrites the single slot", func(t *testing.T) {
		repo := openTestStore(t).SessionRepo()
		first := sampleState()
		if err := repo.Save(first); err != nil {
			t.Fatal(err)
		}
		second := sampleState()
		second.Timer = 10
		if err := repo.Save(second); err != nil {
			t.Fatal(err)
		}

		got, err := repo.Load()
		if err != nil {
			t.Fatal(err)
		}
		if got.Timer != 10 {
			t.Errorf("Timer = %d, want overwritten value 10", got.Timer)
		}
	})

	t.Run("clear empties the slot", func(t *testing.T) {
		repo := openTestStore(t).SessionRepo()
		if err := repo.Save(sampleState()); err != nil {
			t.Fatal(err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("Clear() error: %v", err)
		}
		state, err := repo.Load()
		if err != nil || state != nil {
			t.Errorf("Load() = (%+v, %v) after clear", state, err)
		}
	})

	t.Run("corrupt payload reported as invalid session", func(t *testing.T) {
		st := openTestStore(t)
		_, err := st.DB().Exec(
			`INSERT INTO session_slot (id, payload, updated_at) VALUES (1, 'not-json', 0)`)
		if err != nil {
			t.Fatal(err)
		}

		_, err = st.SessionRepo().Load()
		if !errors.Is(err, quiz.ErrInvalidSessionData) {
			t.Errorf("err = %v, want ErrInvalidSessionData", err)
		}
	})
}

func TestHistoryRepo(t *testing.T) {
	rec := func(i int) history.Record {
		return history.Record{
			ID:         fmt.Sprintf("id-%03d", i),
			Timestamp:  int64(i),
			Score:      i % 10,
			Total:      10,
			Mode:       "study",
			Difficulty: "Easy",
			Category:   "Hardware",
		}
	}

	t.Run("append and read newest first", func(t *testing.T) {
		repo := openTestStore(t).HistoryRepo()
		for i := 1; i <= 3; i++ {
			if err := repo.Append(rec(i)); err != nil {
				t.Fatalf("Append() error: %v", err)
			}
		}

		got, err := repo.All()
		if err != nil {
			t.Fatalf("All() error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for i, want := range []int64{3, 2, 1} {
			if got[i].Timestamp != want {
				t.Errorf("record %d ts = %d, want %d", i, got[i].Timestamp, want)
			}
		}
		if got[0].Mode != "study" || got[0].Category != "Hardware" {
			t.Errorf("fields not persisted: %+v", got[0])
		}
	})

	t.Run("prunes beyond the cap", func(t *testing.T) {
		repo := openTestStore(t).HistoryRepo()
		for i := 1; i <= history.Cap+7; i++ {
			if err := repo.Append(rec(i)); err != nil {
				t.Fatal(err)
			}
		}

		got, err := repo.All()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != history.Cap {
			t.Fatalf("len = %d, want %d", len(got), history.Cap)
		}
		// The oldest rows are the ones dropped.
		if got[len(got)-1].Timestamp != 8 {
			t.Errorf("oldest kept ts = %d, want 8", got[len(got)-1].Timestamp)
		}
	})

	t.Run("clear removes everything", func(t *testing.T) {
		repo := openTestStore(t).HistoryRepo()
		if err := repo.Append(rec(1)); err != nil {
			t.Fatal(err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("Clear() error: %v", err)
		}
		got, err := repo.All()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d after clear", len(got))
		}
	})
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer st.Close()

	if err := st.DB().Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}
