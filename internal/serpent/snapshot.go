package serpent

import (
	"time"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// Snapshot captures the game state for determinism tests and tooling.
type Snapshot struct {
	Screen         ScreenID
	Score          int
	Combo          int
	MaxCombo       int
	Level          int
	FoodEaten      int // this level
	TotalFoodEaten int
	SnakeLen       int
	Head           core.Vec2
	Direction      core.Direction
	Alive          bool
	GrowthPending  int

	HasFood    bool
	FoodPos    core.Vec2
	FoodType   FoodType
	FoodRunner bool

	HasPowerUp  bool
	PowerUpPos  core.Vec2
	PowerUpType PowerUpType
	Active      Effects

	TickRate time.Duration
	GameTime time.Duration
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	w := g.w
	s := Snapshot{
		Screen:         g.fsm.Current(),
		Score:          w.score.Score,
		Combo:          w.score.Combo,
		MaxCombo:       w.maxCombo,
		Level:          w.levels.Current,
		FoodEaten:      w.score.FoodEaten,
		TotalFoodEaten: w.score.TotalFoodEaten,
		SnakeLen:       w.snake.Len(),
		Head:           w.snake.Head(),
		Direction:      w.snake.Direction,
		Alive:          w.snake.Alive,
		GrowthPending:  w.snake.GrowthPending,
		Active:         w.powerUps.Active(),
		TickRate:       g.loop.TickRate(),
		GameTime:       w.gameTime,
	}
	if it := w.food.Item; it != nil {
		s.HasFood = true
		s.FoodPos = it.Pos
		s.FoodType = it.Type
		s.FoodRunner = it.Runner
	}
	if it := w.powerUps.Entity.Item; it != nil {
		s.HasPowerUp = true
		s.PowerUpPos = it.Pos
		s.PowerUpType = it.Type
	}
	return s
}
