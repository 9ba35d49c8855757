package serpent

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// ActivePowerUp is a running effect. Permanent effects end only when
// consumed.
type ActivePowerUp struct {
	Type      PowerUpType
	ExpiresAt time.Time
	Permanent bool
}

// PowerUpSystem spawns field items and tracks active effects.
type PowerUpSystem struct {
	Entity *PowerUpEntity

	active     map[PowerUpType]ActivePowerUp
	spawnTimer time.Duration
	nextSpawn  time.Duration

	cfg   config.PowerUpConfig
	bus   *engine.Bus
	rng   *rand.Rand
	clock engine.Clock
}

// NewPowerUpSystem returns a system with no active effects.
func NewPowerUpSystem(cfg config.GameConfig, bus *engine.Bus, rng *rand.Rand, clock engine.Clock) *PowerUpSystem {
	s := &PowerUpSystem{
		Entity: NewPowerUpEntity(cfg, rng, clock),
		active: map[PowerUpType]ActivePowerUp{},
		cfg:    cfg.PowerUps,
		bus:    bus,
		rng:    rng,
		clock:  clock,
	}
	s.nextSpawn = s.rollInterval()
	return s
}

// Reset clears effects and the field item and restarts the spawn timer.
func (s *PowerUpSystem) Reset() {
	clear(s.active)
	s.Entity.Clear()
	s.spawnTimer = 0
	s.nextSpawn = s.rollInterval()
}

// Update runs the spawn timer while the field is empty, drops a field
// item that timed out and expires finished effects.
func (s *PowerUpSystem) Update(dt time.Duration, gridSize int, occupied []core.Vec2, chance float64) {
	if s.Entity.Item == nil {
		s.spawnTimer += dt
		if s.spawnTimer >= s.nextSpawn && s.rng.Float64() < chance {
			s.Entity.Spawn(gridSize, occupied)
			s.spawnTimer = 0
			s.nextSpawn = s.rollInterval()
		}
	}

	if s.Entity.IsExpired() {
		s.Entity.Clear()
	}

	now := s.clock.Now()
	for _, t := range PowerUpTypes {
		a, ok := s.active[t]
		if !ok || a.Permanent {
			continue
		}
		if !now.Before(a.ExpiresAt) {
			delete(s.active, t)
			s.bus.Emit(PowerUpExpired{Type: t})
		}
	}
}

// Activate starts or refreshes an effect, removes the field item and
// publishes the pickup.
func (s *PowerUpSystem) Activate(t PowerUpType) {
	d := tuning(s.cfg.Types, t).Duration()
	a := ActivePowerUp{Type: t, Permanent: d <= 0}
	if !a.Permanent {
		a.ExpiresAt = s.clock.Now().Add(d)
	}
	s.active[t] = a
	s.Entity.Clear()
	s.bus.Emit(PowerUpCollected{Type: t})
}

// ConsumeShield removes an active shield. It reports whether one was used.
func (s *PowerUpSystem) ConsumeShield() bool {
	if _, ok := s.active[PowerUpShield]; !ok {
		return false
	}
	delete(s.active, PowerUpShield)
	s.bus.Emit(PowerUpExpired{Type: PowerUpShield})
	return true
}

// IsActive reports whether t is running.
func (s *PowerUpSystem) IsActive(t PowerUpType) bool {
	_, ok := s.active[t]
	return ok
}

// Active returns the set of running effects.
func (s *PowerUpSystem) Active() Effects {
	var e Effects
	for t := range s.active {
		e = e.With(t)
	}
	return e
}

// ActiveLabel is the HUD text for running effects, e.g. "GHOST + MAGNET".
func (s *PowerUpSystem) ActiveLabel() string {
	return s.Active().Label()
}

// Remaining returns the time left on t. Permanent and inactive effects
// report zero.
func (s *PowerUpSystem) Remaining(t PowerUpType) time.Duration {
	a, ok := s.active[t]
	if !ok || a.Permanent {
		return 0
	}
	return max(0, a.ExpiresAt.Sub(s.clock.Now()))
}

// IsSlowed reports whether the slow-down effect is running.
func (s *PowerUpSystem) IsSlowed() bool {
	return s.IsActive(PowerUpSlowDown)
}

func (s *PowerUpSystem) rollInterval() time.Duration {
	ms := core.RandomInt(s.rng, s.cfg.SpawnIntervalMinMS, s.cfg.SpawnIntervalMaxMS)
	return time.Duration(ms) * time.Millisecond
}
