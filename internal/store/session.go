package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
)

// SessionRepo persists the single active session slot. It implements
// quiz.Slot, so it can be handed to the engine directly.
type SessionRepo struct {
	db *sql.DB
}

var _ quiz.Slot = (*SessionRepo)(nil)

// Save overwrites the slot with the serialized session state.
func (r *SessionRepo) Save(state *quiz.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = r.db.Exec(`
		INSERT INTO session_slot (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the saved session, or (nil, nil) when the slot is empty.
// A payload that fails to decode reports quiz.ErrInvalidSessionData so the
// caller can void the slot and fall back to the home state.
func (r *SessionRepo) Load() (*quiz.SessionState, error) {
	var payload string
	err := r.db.QueryRow(`SELECT payload FROM session_slot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var state quiz.SessionState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("%w: %v", quiz.ErrInvalidSessionData, err)
	}
	return &state, nil
}

// Clear empties the slot.
func (r *SessionRepo) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM session_slot WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
