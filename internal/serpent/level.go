package serpent

import (
	"math"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// LevelSystem tracks the current level and derives its tick rate.
type LevelSystem struct {
	Current int

	levels       []config.LevelConfig
	timing       config.TimingConfig
	foodPerLevel int
	bus          *engine.Bus
}

// NewLevelSystem starts at level 1.
func NewLevelSystem(cfg config.GameConfig, bus *engine.Bus) *LevelSystem {
	return &LevelSystem{
		Current:      1,
		levels:       cfg.Levels,
		timing:       cfg.Timing,
		foodPerLevel: cfg.Scoring.FoodPerLevel,
		bus:          bus,
	}
}

// Reset returns to level 1.
func (l *LevelSystem) Reset() {
	l.Current = 1
}

// Config returns the current level's definition. Levels past the table
// reuse the last entry.
func (l *LevelSystem) Config() config.LevelConfig {
	i := min(l.Current-1, len(l.levels)-1)
	return l.levels[max(i, 0)]
}

// MaxLevel returns the number of defined levels.
func (l *LevelSystem) MaxLevel() int {
	return len(l.levels)
}

// FoodPerLevel returns the quota needed to finish a level.
func (l *LevelSystem) FoodPerLevel() int {
	return l.foodPerLevel
}

// TickRate returns the tick length for the level and difficulty, never
// shorter than the configured minimum.
func (l *LevelSystem) TickRate(d config.Difficulty) time.Duration {
	base := float64(l.timing.BaseTick(d))
	ms := int(math.Floor(base * l.Config().TickMultiplier))
	return time.Duration(max(l.timing.MinTickMS, ms)) * time.Millisecond
}

// CheckLevelUp reports whether the quota is met and a next level exists.
func (l *LevelSystem) CheckLevelUp(foodEaten int) bool {
	return foodEaten >= l.foodPerLevel && l.Current < len(l.levels)
}

// LevelUp advances one level and publishes level:complete.
func (l *LevelSystem) LevelUp() config.LevelConfig {
	l.Current++
	cfg := l.Config()
	l.bus.Emit(LevelComplete{Level: l.Current, Config: cfg})
	return cfg
}
