package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreGetPutDelete(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v; expected not found", ok, err)
	}

	if err := store.Put("k", "one"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("k", "two"); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}
	v, ok, err := store.Get("k")
	if err != nil || !ok || v != "two" {
		t.Errorf("Get(k) = %q, %v, %v; expected two", v, ok, err)
	}
	if _, ok, _ := store.UpdatedAt("k"); !ok {
		t.Error("UpdatedAt(k) should find the key")
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	hs := NewHighScoreManager(store, 10, nil)
	hs.Add("ADA", 120, 2)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	scores := NewHighScoreManager(store, 10, nil).Scores()
	if len(scores) != 1 || scores[0].Name != "ADA" || scores[0].Score != 120 {
		t.Errorf("reloaded scores = %+v", scores)
	}
}

func TestHighScoreRankingAndCap(t *testing.T) {
	hs := NewHighScoreManager(NewMemoryKV(), 3, nil)
	hs.SetClock(engine.NewManualClock(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)))

	if hs.IsHighScore(0) {
		t.Error("zero should never be a high score")
	}
	if !hs.IsHighScore(1) {
		t.Error("any positive score enters a table that is not full")
	}

	hs.Add("A", 100, 1)
	hs.Add("B", 300, 3)
	hs.Add("C", 200, 2)
	entry, rank := hs.Add("D", 250, 2)

	if rank != 2 {
		t.Errorf("rank of 250 = %d, expected 2", rank)
	}
	if entry.Date != "2025-03-14" || entry.ID == "" {
		t.Errorf("entry = %+v, expected date and id", entry)
	}

	scores := hs.Scores()
	expected := []int{300, 250, 200}
	if len(scores) != len(expected) {
		t.Fatalf("len(scores) = %d, expected %d", len(scores), len(expected))
	}
	for i, s := range expected {
		if scores[i].Score != s {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, s)
		}
	}

	if hs.IsHighScore(200) {
		t.Error("a score equal to the last entry should not qualify on a full table")
	}
	if _, rank := hs.Add("E", 50, 1); rank != 0 {
		t.Errorf("rank of a score below the table = %d, expected 0", rank)
	}
}

func TestHighScoreCorruptData(t *testing.T) {
	kv := NewMemoryKV()
	kv.Put(KeyHighScores, "{not json")

	hs := NewHighScoreManager(kv, 10, nil)
	if len(hs.Scores()) != 0 {
		t.Error("corrupt data should load as an empty table")
	}

	hs.Add("OK", 10, 1)
	raw, _, _ := kv.Get(KeyHighScores)
	if raw == "{not json" {
		t.Error("saving should replace corrupt data")
	}
}

func TestHighScoreLoadSortsAndCaps(t *testing.T) {
	kv := NewMemoryKV()
	kv.Put(KeyHighScores, `[{"name":"a","score":5,"level":1,"date":"x"},{"name":"b","score":50,"level":2,"date":"x"},{"name":"c","score":20,"level":1,"date":"x"}]`)

	scores := NewHighScoreManager(kv, 2, nil).Scores()
	if len(scores) != 2 || scores[0].Name != "b" || scores[1].Name != "c" {
		t.Errorf("scores = %+v, expected b, c", scores)
	}
}

type failingKV struct{}

var errUnavailable = errors.New("unavailable")

func (failingKV) Get(string) (string, bool, error) { return "", false, errUnavailable }
func (failingKV) Put(string, string) error         { return errUnavailable }
func (failingKV) Delete(string) error              { return errUnavailable }

func TestManagersSurviveFailingStorage(t *testing.T) {
	cfg := config.Default()

	hs := NewHighScoreManager(failingKV{}, 10, nil)
	if _, rank := hs.Add("X", 10, 1); rank != 1 {
		t.Errorf("Add() on failing storage should still rank in memory, got %d", rank)
	}

	sm := NewSettingsManager(failingKV{}, cfg, nil)
	if sm.Get() != config.DefaultSettings(cfg) {
		t.Error("failing storage should load defaults")
	}
	saved := sm.Save(config.Settings{Difficulty: config.DifficultyHard, GridSize: 25, BoundaryMode: config.BoundaryWall})
	if sm.Get() != saved || saved.GridSize != 25 {
		t.Error("Save() should keep the value in memory when persisting fails")
	}
}

func TestSettingsPerFieldFallback(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name     string
		raw      string
		expected config.Settings
	}{
		{
			name:     "missing record",
			raw:      "",
			expected: config.DefaultSettings(cfg),
		},
		{
			name:     "corrupt json",
			raw:      "[[",
			expected: config.DefaultSettings(cfg),
		},
		{
			name:     "partial record",
			raw:      `{"difficulty":"hard"}`,
			expected: config.Settings{Difficulty: config.DifficultyHard, GridSize: 20, BoundaryMode: config.BoundaryWrap},
		},
		{
			name:     "wrong field types",
			raw:      `{"difficulty":"easy","gridSize":"big","boundaryMode":"wall"}`,
			expected: config.Settings{Difficulty: config.DifficultyEasy, GridSize: 20, BoundaryMode: config.BoundaryWall},
		},
		{
			name:     "unknown values",
			raw:      `{"difficulty":"nightmare","gridSize":30,"boundaryMode":"portal"}`,
			expected: config.Settings{Difficulty: config.DifficultyNormal, GridSize: 30, BoundaryMode: config.BoundaryWrap},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := NewMemoryKV()
			if tc.raw != "" {
				kv.Put(KeySettings, tc.raw)
			}
			if got := NewSettingsManager(kv, cfg, nil).Get(); got != tc.expected {
				t.Errorf("Get() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	cfg := config.Default()
	store := openTestStore(t)

	want := config.Settings{Difficulty: config.DifficultyEasy, GridSize: 15, BoundaryMode: config.BoundaryWall}
	NewSettingsManager(store, cfg, nil).Save(want)

	if got := NewSettingsManager(store, cfg, nil).Get(); got != want {
		t.Errorf("reloaded settings = %+v, expected %+v", got, want)
	}
}
