package config

import "slices"

// Difficulty selects the base simulation speed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in selector order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return slices.Contains(Difficulties, d)
}

// BoundaryMode decides what happens when the head leaves the grid.
type BoundaryMode string

const (
	BoundaryWrap BoundaryMode = "wrap"
	BoundaryWall BoundaryMode = "wall"
)

// BoundaryModes lists every boundary mode in selector order.
var BoundaryModes = []BoundaryMode{BoundaryWrap, BoundaryWall}

// Valid reports whether b is a known boundary mode.
func (b BoundaryMode) Valid() bool {
	return slices.Contains(BoundaryModes, b)
}

// Settings are the user-editable options persisted between sessions.
type Settings struct {
	Difficulty   Difficulty   `json:"difficulty"`
	GridSize     int          `json:"gridSize"`
	BoundaryMode BoundaryMode `json:"boundaryMode"`
}

// DefaultSettings returns normal difficulty, wrap mode and the default grid.
func DefaultSettings(cfg GameConfig) Settings {
	return Settings{
		Difficulty:   DifficultyNormal,
		GridSize:     cfg.Grid.DefaultSize,
		BoundaryMode: BoundaryWrap,
	}
}

// Sanitize replaces every invalid field with its default.
func (s Settings) Sanitize(cfg GameConfig) Settings {
	def := DefaultSettings(cfg)
	if !s.Difficulty.Valid() {
		s.Difficulty = def.Difficulty
	}
	if !s.BoundaryMode.Valid() {
		s.BoundaryMode = def.BoundaryMode
	}
	if !slices.Contains(cfg.Grid.Sizes, s.GridSize) {
		s.GridSize = def.GridSize
	}
	return s
}

// Cycle returns the element of values offset steps away from current,
// wrapping at both ends. An unknown current starts from index 0.
func Cycle[T comparable](values []T, current T, offset int) T {
	if len(values) == 0 {
		return current
	}
	i := slices.Index(values, current)
	if i < 0 {
		i = 0
	}
	n := len(values)
	return values[((i+offset)%n+n)%n]
}
