package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/gravity-runner/internal/runner"
)

// GetInt returns the integer setting stored under key, 0 if unset.
func (s *Store) GetInt(key string) (int, error) {
	var v int
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read setting %q: %w", key, err)
	}
	return v, nil
}

// PutMax stores value under key unless a larger value is already stored.
func (s *Store) PutMax(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE
		 SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.value > settings.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key.
func (s *Store) DeleteSetting(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete setting %q: %w", key, err)
	}
	return nil
}

// HighScoreRecord persists one high score under a settings key.
type HighScoreRecord struct {
	store *Store
	key   string
}

// HighScoreRecord returns the record stored under key.
func (s *Store) HighScoreRecord(key string) *HighScoreRecord {
	return &HighScoreRecord{store: s, key: key}
}

// Load implements runner.HighScoreStore.
func (r *HighScoreRecord) Load() (int, error) {
	return r.store.GetInt(r.key)
}

// Save implements runner.HighScoreStore. The stored value never decreases.
func (r *HighScoreRecord) Save(score int) error {
	return r.store.PutMax(r.key, score)
}

// Ensure HighScoreRecord implements HighScoreStore
var _ runner.HighScoreStore = (*HighScoreRecord)(nil)
