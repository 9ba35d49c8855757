package serpent

import (
	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// Bus topics published by the game systems.
const (
	TopicScoreUpdated     engine.Topic = "score:updated"
	TopicComboIncrement   engine.Topic = "combo:increment"
	TopicComboReset       engine.Topic = "combo:reset"
	TopicPowerUpCollected engine.Topic = "powerup:collected"
	TopicPowerUpExpired   engine.Topic = "powerup:expired"
	TopicLevelComplete    engine.Topic = "level:complete"
	TopicFoodEaten        engine.Topic = "food:eaten"
)

// ScoreUpdated is published after every scored food.
type ScoreUpdated struct {
	Score        int
	Combo        int
	PointsGained int
}

// ComboIncrement is published when the combo grows past 1.
type ComboIncrement struct {
	Combo int
}

// ComboReset is published when the combo window runs out.
type ComboReset struct{}

// PowerUpCollected is published when an effect is activated.
type PowerUpCollected struct {
	Type PowerUpType
}

// PowerUpExpired is published when an effect ends, including a shield
// that absorbed a hit.
type PowerUpExpired struct {
	Type PowerUpType
}

// LevelComplete is published after the level counter advances.
type LevelComplete struct {
	Level  int
	Config config.LevelConfig
}

// FoodEaten is published after food is eaten on a tick that did not
// finish the level.
type FoodEaten struct {
	Type   FoodType
	Points int
	Pos    core.Vec2
}

func (ScoreUpdated) Topic() engine.Topic     { return TopicScoreUpdated }
func (ComboIncrement) Topic() engine.Topic   { return TopicComboIncrement }
func (ComboReset) Topic() engine.Topic       { return TopicComboReset }
func (PowerUpCollected) Topic() engine.Topic { return TopicPowerUpCollected }
func (PowerUpExpired) Topic() engine.Topic   { return TopicPowerUpExpired }
func (LevelComplete) Topic() engine.Topic    { return TopicLevelComplete }
func (FoodEaten) Topic() engine.Topic        { return TopicFoodEaten }
