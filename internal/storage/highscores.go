package storage

import (
	"encoding/json"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// DefaultMaxHighScores is used when a manager is built with a zero limit.
const DefaultMaxHighScores = 10

// HighScoreEntry is one row of the high-score table.
type HighScoreEntry struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level int    `json:"level"`
	Date  string `json:"date"` // YYYY-MM-DD
}

// HighScoreManager keeps the ranked high-score list and persists it.
// Read and write failures are logged and never returned to the game.
type HighScoreManager struct {
	mu     sync.RWMutex
	kv     KV
	max    int
	clock  engine.Clock
	logger *log.Logger
	scores []HighScoreEntry
}

// NewHighScoreManager loads the list from kv. kv may be nil, in which
// case the list lives only in memory.
func NewHighScoreManager(kv KV, maxEntries int, logger *log.Logger) *HighScoreManager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHighScores
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &HighScoreManager{
		kv:     kv,
		max:    maxEntries,
		clock:  engine.SystemClock{},
		logger: logger,
	}
	m.load()
	return m
}

// SetClock replaces the clock used to date new entries.
func (m *HighScoreManager) SetClock(c engine.Clock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = c
}

// Scores returns a copy of the list, best first.
func (m *HighScoreManager) Scores() []HighScoreEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.scores)
}

// IsHighScore reports whether score would enter the table.
func (m *HighScoreManager) IsHighScore(score int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.scores) < m.max {
		return score > 0
	}
	return score > m.scores[len(m.scores)-1].Score
}

// Add inserts a new entry, keeps the list sorted and capped, and saves it.
// It returns the stored entry and its 1-based rank, or rank 0 if the
// score did not make the table.
func (m *HighScoreManager) Add(name string, score, level int) (HighScoreEntry, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := HighScoreEntry{
		ID:    uuid.NewString(),
		Name:  name,
		Score: score,
		Level: level,
		Date:  m.clock.Now().Format("2006-01-02"),
	}
	m.scores = append(m.scores, entry)
	sortScores(m.scores)
	if len(m.scores) > m.max {
		m.scores = m.scores[:m.max]
	}

	rank := slices.IndexFunc(m.scores, func(e HighScoreEntry) bool { return e.ID == entry.ID }) + 1
	m.save()
	return entry, rank
}

// Clear empties the table.
func (m *HighScoreManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = nil
	m.save()
}

func (m *HighScoreManager) load() {
	if m.kv == nil {
		return
	}
	raw, ok, err := m.kv.Get(KeyHighScores)
	if err != nil {
		m.logger.Warn("cannot read high scores, starting empty", "err", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var scores []HighScoreEntry
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		m.logger.Warn("high scores are corrupt, starting empty", "err", err)
		return
	}
	sortScores(scores)
	if len(scores) > m.max {
		scores = scores[:m.max]
	}
	m.scores = scores
}

func (m *HighScoreManager) save() {
	if m.kv == nil {
		return
	}
	data, err := json.Marshal(m.scores)
	if err != nil {
		m.logger.Warn("cannot encode high scores", "err", err)
		return
	}
	if err := m.kv.Put(KeyHighScores, string(data)); err != nil {
		m.logger.Warn("cannot save high scores", "err", err)
	}
}

// sortScores orders by score, highest first. Equal scores keep their
// insertion order so an older entry outranks a newer tie.
func sortScores(s []HighScoreEntry) {
	slices.SortStableFunc(s, func(a, b HighScoreEntry) int {
		return b.Score - a.Score
	})
}
