package serpent

import (
	"math"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// ScoreSystem tracks score, combo and food counters.
type ScoreSystem struct {
	Score          int
	Combo          int
	ComboTimer     time.Duration
	FoodEaten      int // this level
	TotalFoodEaten int

	cfg config.ScoringConfig
	bus *engine.Bus
}

// NewScoreSystem returns a zeroed score.
func NewScoreSystem(cfg config.ScoringConfig, bus *engine.Bus) *ScoreSystem {
	return &ScoreSystem{cfg: cfg, bus: bus}
}

// Reset zeroes every counter.
func (s *ScoreSystem) Reset() {
	s.Score = 0
	s.Combo = 0
	s.ComboTimer = 0
	s.FoodEaten = 0
	s.TotalFoodEaten = 0
}

// ResetLevelFood zeroes the per-level food counter.
func (s *ScoreSystem) ResetLevelFood() {
	s.FoodEaten = 0
}

// OnFoodEaten raises the combo, awards base points scaled by the combo
// multiplier (doubled under DoublePoints) and returns the points awarded.
func (s *ScoreSystem) OnFoodEaten(base int, effects Effects) int {
	s.Combo = min(s.Combo+1, s.cfg.ComboMax)
	s.ComboTimer = s.cfg.ComboTimeout()
	s.FoodEaten++
	s.TotalFoodEaten++

	points := int(math.Floor(float64(base) * s.Multiplier(effects)))
	s.Score += points

	s.bus.Emit(ScoreUpdated{Score: s.Score, Combo: s.Combo, PointsGained: points})
	if s.Combo > 1 {
		s.bus.Emit(ComboIncrement{Combo: s.Combo})
	}
	return points
}

// Multiplier returns the current point multiplier.
func (s *ScoreSystem) Multiplier(effects Effects) float64 {
	m := 1 + float64(max(s.Combo-1, 0))*s.cfg.ComboStep
	if effects.Has(PowerUpDoublePoints) {
		m *= 2
	}
	return m
}

// Update counts the combo window down and drops the combo when it closes.
func (s *ScoreSystem) Update(dt time.Duration) {
	if s.ComboTimer <= 0 {
		return
	}
	s.ComboTimer -= dt
	if s.ComboTimer <= 0 {
		s.ComboTimer = 0
		if s.Combo > 0 {
			s.Combo = 0
			s.bus.Emit(ComboReset{})
		}
	}
}

// ComboProgress is the remaining share of the combo window in [0, 1].
func (s *ScoreSystem) ComboProgress() float64 {
	timeout := s.cfg.ComboTimeout()
	if timeout <= 0 || s.Combo == 0 {
		return 0
	}
	return float64(s.ComboTimer) / float64(timeout)
}
