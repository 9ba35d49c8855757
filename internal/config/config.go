// Package config provides the YAML game tuning for Neon Serpent and the
// user-facing settings types (difficulty, grid size, boundary mode).
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// GameConfig contains every tunable number of the game.
type GameConfig struct {
	Timing     TimingConfig    `yaml:"timing"`
	Scoring    ScoringConfig   `yaml:"scoring"`
	Food       FoodConfig      `yaml:"food"`
	PowerUps   PowerUpConfig   `yaml:"powerups"`
	Snake      SnakeConfig     `yaml:"snake"`
	Grid       GridConfig      `yaml:"grid"`
	Particles  ParticleConfig  `yaml:"particles"`
	HighScores HighScoreConfig `yaml:"high_scores"`
	Levels     []LevelConfig   `yaml:"levels"`
}

// TimingConfig defines simulation speed.
type TimingConfig struct {
	BaseTickMS        BaseTicks `yaml:"base_tick_ms"`
	MinTickMS         int       `yaml:"min_tick_ms"`
	SlowdownFactor    float64   `yaml:"slowdown_factor"`
	LevelTransitionMS int       `yaml:"level_transition_ms"`
}

// BaseTicks is the tick length per difficulty before level scaling.
type BaseTicks struct {
	Easy   int `yaml:"easy"`
	Normal int `yaml:"normal"`
	Hard   int `yaml:"hard"`
}

// ScoringConfig defines combo and level quota rules.
type ScoringConfig struct {
	ComboTimeoutMS   int     `yaml:"combo_timeout_ms"`
	ComboMax         int     `yaml:"combo_max"`
	ComboStep        float64 `yaml:"combo_step"`
	FoodPerLevel     int     `yaml:"food_per_level"`
	CountUpDivisorMS int     `yaml:"countup_divisor_ms"`
}

// FoodConfig defines food values and type odds.
type FoodConfig struct {
	Points        FoodPoints `yaml:"points"`
	GoldenChance  float64    `yaml:"golden_chance"`
	BonusChance   float64    `yaml:"bonus_chance"`
	SpawnAttempts int        `yaml:"spawn_attempts"`
	RunnerSpeed   float64    `yaml:"runner_speed"` // cells per second
}

// FoodPoints is the base score of each food type.
type FoodPoints struct {
	Normal int `yaml:"normal"`
	Bonus  int `yaml:"bonus"`
	Golden int `yaml:"golden"`
}

// PowerUpConfig defines field items and effect durations.
type PowerUpConfig struct {
	FieldTimeoutMS     int          `yaml:"field_timeout_ms"`
	SpawnIntervalMinMS int          `yaml:"spawn_interval_min_ms"`
	SpawnIntervalMaxMS int          `yaml:"spawn_interval_max_ms"`
	Types              PowerUpTypes `yaml:"types"`
}

// PowerUpTypes holds per-type tuning.
type PowerUpTypes struct {
	Ghost        PowerUpTuning `yaml:"ghost"`
	SlowDown     PowerUpTuning `yaml:"slowdown"`
	DoublePoints PowerUpTuning `yaml:"double"`
	Magnet       PowerUpTuning `yaml:"magnet"`
	Shield       PowerUpTuning `yaml:"shield"`
}

// PowerUpTuning is the duration and spawn weight of one power-up type.
// A zero duration means the effect lasts until consumed.
type PowerUpTuning struct {
	DurationMS int     `yaml:"duration_ms"`
	Weight     float64 `yaml:"weight"`
}

// SnakeConfig defines the starting snake.
type SnakeConfig struct {
	InitialLength int `yaml:"initial_length"`
}

// GridConfig defines the selectable board sizes.
type GridConfig struct {
	Sizes       []int `yaml:"sizes"`
	DefaultSize int   `yaml:"default_size"`
	CellWidth   int   `yaml:"cell_width"` // terminal columns per grid cell
}

// ParticleConfig defines the burst effects.
type ParticleConfig struct {
	PoolSize  int     `yaml:"pool_size"`
	Burst     int     `yaml:"burst"`
	Damping   float64 `yaml:"damping"`
	MinLifeMS int     `yaml:"min_life_ms"`
	MaxLifeMS int     `yaml:"max_life_ms"`
	PopupMS   int     `yaml:"popup_ms"`
}

// HighScoreConfig defines the high-score table.
type HighScoreConfig struct {
	MaxEntries    int `yaml:"max_entries"`
	MaxNameLength int `yaml:"max_name_length"`
}

// LevelConfig describes one level.
type LevelConfig struct {
	Level          int            `yaml:"level"`
	TargetScore    int            `yaml:"target_score"`
	TickMultiplier float64        `yaml:"tick_multiplier"`
	PowerUpChance  float64        `yaml:"powerup_chance"`
	FoodTypes      []string       `yaml:"food_types"`
	Obstacles      []ObstacleData `yaml:"obstacles"`
}

// ObstacleData is one obstacle as a list of blocked cells.
type ObstacleData struct {
	Segments []core.Vec2 `yaml:"segments"`
}

// Food type names accepted in level definitions.
const (
	FoodNormal = "normal"
	FoodBonus  = "bonus"
	FoodGolden = "golden"
)

// ErrNoLevels is returned by Validate for a config without levels.
var ErrNoLevels = errors.New("config: no levels defined")

// Validate checks the config for values the game cannot run with.
func (c GameConfig) Validate() error {
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}
	for _, d := range Difficulties {
		if c.Timing.BaseTick(d) <= 0 {
			return fmt.Errorf("config: base tick for %s must be positive", d)
		}
	}
	if c.Timing.MinTickMS <= 0 {
		return fmt.Errorf("config: min_tick_ms must be positive, got %d", c.Timing.MinTickMS)
	}
	if c.Snake.InitialLength < 1 {
		return fmt.Errorf("config: initial_length must be at least 1, got %d", c.Snake.InitialLength)
	}
	if c.Scoring.FoodPerLevel < 1 {
		return fmt.Errorf("config: food_per_level must be at least 1, got %d", c.Scoring.FoodPerLevel)
	}
	if c.Scoring.ComboMax < 1 {
		return fmt.Errorf("config: combo_max must be at least 1, got %d", c.Scoring.ComboMax)
	}
	if c.PowerUps.SpawnIntervalMaxMS < c.PowerUps.SpawnIntervalMinMS {
		return fmt.Errorf("config: spawn_interval_max_ms below spawn_interval_min_ms")
	}
	if len(c.Grid.Sizes) == 0 {
		return fmt.Errorf("config: no grid sizes defined")
	}
	if !slices.Contains(c.Grid.Sizes, c.Grid.DefaultSize) {
		return fmt.Errorf("config: default grid size %d is not one of %v", c.Grid.DefaultSize, c.Grid.Sizes)
	}
	for _, size := range c.Grid.Sizes {
		if size <= c.Snake.InitialLength {
			return fmt.Errorf("config: grid size %d too small for a snake of %d", size, c.Snake.InitialLength)
		}
	}
	for i, lvl := range c.Levels {
		if lvl.TickMultiplier <= 0 {
			return fmt.Errorf("config: level %d: tick_multiplier must be positive", i+1)
		}
		if len(lvl.FoodTypes) == 0 {
			return fmt.Errorf("config: level %d: no food types", i+1)
		}
		for _, ft := range lvl.FoodTypes {
			switch ft {
			case FoodNormal, FoodBonus, FoodGolden:
			default:
				return fmt.Errorf("config: level %d: unknown food type %q", i+1, ft)
			}
		}
	}
	return nil
}

// BaseTick returns the base tick length in milliseconds for d.
// Unknown difficulties use the normal tick.
func (t TimingConfig) BaseTick(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return t.BaseTickMS.Easy
	case DifficultyHard:
		return t.BaseTickMS.Hard
	default:
		return t.BaseTickMS.Normal
	}
}

// LevelTransition returns the level transition screen duration.
func (t TimingConfig) LevelTransition() time.Duration {
	return ms(t.LevelTransitionMS)
}

// ComboTimeout returns the combo decay window.
func (s ScoringConfig) ComboTimeout() time.Duration {
	return ms(s.ComboTimeoutMS)
}

// FieldTimeout returns how long an uncollected power-up stays on the board.
func (p PowerUpConfig) FieldTimeout() time.Duration {
	return ms(p.FieldTimeoutMS)
}

// Duration returns the effect length, or 0 for an effect that lasts
// until consumed.
func (p PowerUpTuning) Duration() time.Duration {
	return ms(p.DurationMS)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
