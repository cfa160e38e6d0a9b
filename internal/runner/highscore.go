package runner

import "sync"

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	// Load returns the stored high score, 0 if none was saved.
	Load() (int, error)
	// Save records a new high score.
	Save(score int) error
}

// MemoryHighScores keeps the high score in memory. It is used when no
// database is available and in tests.
type MemoryHighScores struct {
	mu    sync.Mutex
	value int
	saves int
}

// NewMemoryHighScores creates a store holding initial.
func NewMemoryHighScores(initial int) *MemoryHighScores {
	return &MemoryHighScores{value: initial}
}

// Load implements HighScoreStore.
func (m *MemoryHighScores) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

// Save implements HighScoreStore. Lower scores are ignored.
func (m *MemoryHighScores) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if score > m.value {
		m.value = score
	}
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryHighScores) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
