package serpent

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// PowerUpItem is a power-up waiting on the board.
type PowerUpItem struct {
	Pos       core.Vec2
	Type      PowerUpType
	SpawnTime time.Time
	Timeout   time.Duration
}

// PowerUpEntity owns the single field power-up.
type PowerUpEntity struct {
	Item *PowerUpItem

	table    *WeightTable[PowerUpType]
	timeout  time.Duration
	attempts int
	rng      *rand.Rand
	clock    engine.Clock
}

// NewPowerUpEntity returns an empty field slot.
func NewPowerUpEntity(cfg config.GameConfig, rng *rand.Rand, clock engine.Clock) *PowerUpEntity {
	return &PowerUpEntity{
		table:    powerUpTable(cfg.PowerUps.Types),
		timeout:  cfg.PowerUps.FieldTimeout(),
		attempts: cfg.Food.SpawnAttempts,
		rng:      rng,
		clock:    clock,
	}
}

// Spawn places a weighted random power-up on a free cell. It returns
// false when no type has weight or no free cell exists.
func (e *PowerUpEntity) Spawn(gridSize int, occupied []core.Vec2) bool {
	t, ok := e.table.Pick(e.rng)
	if !ok {
		return false
	}
	pos, ok := findFreeCell(e.rng, gridSize, newCellSet(occupied), e.attempts)
	if !ok {
		return false
	}
	e.Item = &PowerUpItem{
		Pos:       pos,
		Type:      t,
		SpawnTime: e.clock.Now(),
		Timeout:   e.timeout,
	}
	return true
}

// Clear removes the field item.
func (e *PowerUpEntity) Clear() {
	e.Item = nil
}

// IsExpired reports whether the field item outlived its timeout.
func (e *PowerUpEntity) IsExpired() bool {
	if e.Item == nil {
		return false
	}
	return e.clock.Now().Sub(e.Item.SpawnTime) > e.Item.Timeout
}

// Remaining returns how long the field item stays on the board.
func (e *PowerUpEntity) Remaining() time.Duration {
	if e.Item == nil {
		return 0
	}
	return max(0, e.Item.Timeout-e.clock.Now().Sub(e.Item.SpawnTime))
}
