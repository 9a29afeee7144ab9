package store

import (
	"database/sql"
	"fmt"

	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
)

// HistoryRepo persists finished-session records. It implements history.Log
// and enforces the log cap on append, in the manner of a pruned snapshot
// table.
type HistoryRepo struct {
	db *sql.DB
}

var _ history.Log = (*HistoryRepo)(nil)

// Append inserts a record and evicts the oldest rows beyond history.Cap.
func (r *HistoryRepo) Append(rec history.Record) error {
	_, err := r.db.Exec(`
		INSERT INTO history (id, timestamp, score, total, mode, difficulty, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp, rec.Score, rec.Total, rec.Mode, rec.Difficulty, rec.Category,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return r.prune(history.Cap)
}

// All returns the full log newest-first.
func (r *HistoryRepo) All() ([]history.Record, error) {
	rows, err := r.db.Query(`
		SELECT id, timestamp, score, total, mode, difficulty, category
		FROM history ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var rec history.Record
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Score, &rec.Total, &rec.Mode, &rec.Difficulty, &rec.Category); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear empties the log.
func (r *HistoryRepo) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// prune deletes all but the keep most recent records.
func (r *HistoryRepo) prune(keep int) error {
	_, err := r.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}
