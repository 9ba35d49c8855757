package serpent

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/engine"
)

// Particle is one spark of a burst, in grid cell units.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64 // seconds left
	MaxLife float64
	Color   core.Color
}

// Fade is the remaining share of the particle's life in [0, 1].
func (p *Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}

// ParticleSystem runs short-lived bursts backed by a fixed pool.
type ParticleSystem struct {
	live []*Particle
	pool *engine.Pool[Particle]
	cfg  config.ParticleConfig
	rng  *rand.Rand
}

// NewParticleSystem preallocates the pool.
func NewParticleSystem(cfg config.ParticleConfig, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		pool: engine.NewPool(
			func() *Particle { return &Particle{} },
			func(p *Particle) { *p = Particle{} },
			cfg.PoolSize,
		),
		cfg: cfg,
		rng: rng,
	}
}

// Burst emits count particles from the centre of a cell. speed is the top
// speed in cells per second. Bursts stop at the pool size.
func (s *ParticleSystem) Burst(cell core.Vec2, color core.Color, count int, speed float64) {
	if count <= 0 {
		count = s.cfg.Burst
	}
	minLife := float64(s.cfg.MinLifeMS) / 1000
	maxLife := float64(s.cfg.MaxLifeMS) / 1000
	for i := 0; i < count && len(s.live) < s.cfg.PoolSize; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + s.rng.Float64()*0.5
		v := speed * (0.2 + 0.8*s.rng.Float64())
		life := core.RandomFloat(s.rng, minLife, maxLife)

		p := s.pool.Acquire()
		p.X = float64(cell.X) + 0.5
		p.Y = float64(cell.Y) + 0.5
		p.VX = math.Cos(angle) * v
		p.VY = math.Sin(angle) * v
		p.Life = life
		p.MaxLife = life
		p.Color = color
		s.live = append(s.live, p)
	}
}

// Update moves, damps and ages particles and returns dead ones to the
// pool.
func (s *ParticleSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	n := 0
	for _, p := range s.live {
		p.X += p.VX * sec
		p.Y += p.VY * sec
		p.VX *= s.cfg.Damping
		p.VY *= s.cfg.Damping
		p.Life -= sec
		if p.Life <= 0 {
			s.pool.Release(p)
			continue
		}
		s.live[n] = p
		n++
	}
	clear(s.live[n:])
	s.live = s.live[:n]
}

// Clear releases every live particle.
func (s *ParticleSystem) Clear() {
	for _, p := range s.live {
		s.pool.Release(p)
	}
	clear(s.live)
	s.live = s.live[:0]
}

// Particles returns the live particles.
func (s *ParticleSystem) Particles() []*Particle {
	return s.live
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return len(s.live)
}

// Popup is floating score text above an eaten food.
type Popup struct {
	X, Y  float64
	Text  string
	Color core.Color
	Life  float64 // seconds left
}

// Popups holds the floating texts.
type Popups struct {
	items    []Popup
	lifetime float64
}

// NewPopups returns an empty list. Each popup lives for lifetime.
func NewPopups(lifetime time.Duration) *Popups {
	return &Popups{lifetime: lifetime.Seconds()}
}

// Add places text over cell.
func (p *Popups) Add(cell core.Vec2, text string, color core.Color) {
	p.items = append(p.items, Popup{
		X:     float64(cell.X),
		Y:     float64(cell.Y),
		Text:  text,
		Color: color,
		Life:  p.lifetime,
	})
}

// Update rises and ages popups, dropping expired ones.
func (p *Popups) Update(dt time.Duration) {
	sec := dt.Seconds()
	n := 0
	for _, it := range p.items {
		it.Life -= sec
		it.Y -= sec * 1.2
		if it.Life > 0 {
			p.items[n] = it
			n++
		}
	}
	p.items = p.items[:n]
}

// Clear drops every popup.
func (p *Popups) Clear() {
	p.items = p.items[:0]
}

// Items returns the live popups.
func (p *Popups) Items() []Popup {
	return p.items
}
