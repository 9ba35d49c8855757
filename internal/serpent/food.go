package serpent

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
)

// FoodItem is the single food on the board.
type FoodItem struct {
	Pos        core.Vec2
	Type       FoodType
	Points     int
	PulsePhase float64

	// Runner food slides along its row. RunnerDir is -1 or 1 and
	// RunnerOffset the fractional progress toward the next cell.
	Runner       bool
	RunnerDir    int
	RunnerOffset float64
}

// Food owns the current food item.
type Food struct {
	Item *FoodItem

	cfg config.FoodConfig
	rng *rand.Rand
}

// NewFood returns an empty food slot.
func NewFood(cfg config.FoodConfig, rng *rand.Rand) *Food {
	return &Food{cfg: cfg, rng: rng}
}

// Spawn places a new item of an allowed type on a free cell. It returns
// false and leaves the slot empty when no free cell exists.
func (f *Food) Spawn(gridSize int, occupied []core.Vec2, allowed []FoodType, runner bool) bool {
	f.Item = nil
	if len(allowed) == 0 {
		allowed = []FoodType{FoodNormal}
	}
	ft, _ := foodTable(f.cfg, allowed).Pick(f.rng)

	pos, ok := findFreeCell(f.rng, gridSize, newCellSet(occupied), f.cfg.SpawnAttempts)
	if !ok {
		return false
	}

	item := &FoodItem{
		Pos:        pos,
		Type:       ft,
		Points:     f.points(ft),
		PulsePhase: f.rng.Float64() * 2 * math.Pi,
	}
	if runner {
		item.Runner = true
		item.RunnerDir = 1
		if f.rng.Float64() < 0.5 {
			item.RunnerDir = -1
		}
	}
	f.Item = item
	return true
}

// Clear removes the current item.
func (f *Food) Clear() {
	f.Item = nil
}

// PullToward moves the item one cell closer to target on each axis.
func (f *Food) PullToward(target core.Vec2) {
	if f.Item == nil {
		return
	}
	f.Item.Pos.X += sign(target.X - f.Item.Pos.X)
	f.Item.Pos.Y += sign(target.Y - f.Item.Pos.Y)
}

// AdvanceRunner slides a runner item along its row and bounces it off
// the first and last columns.
func (f *Food) AdvanceRunner(dt time.Duration, gridSize int) {
	it := f.Item
	if it == nil || !it.Runner {
		return
	}
	it.RunnerOffset += float64(it.RunnerDir) * dt.Seconds() * f.cfg.RunnerSpeed
	if math.Abs(it.RunnerOffset) < 1 {
		return
	}
	it.Pos.X += it.RunnerDir
	it.RunnerOffset -= float64(it.RunnerDir)
	if it.Pos.X <= 0 || it.Pos.X >= gridSize-1 {
		it.Pos.X = core.Clamp(it.Pos.X, 0, gridSize-1)
		it.RunnerDir = -it.RunnerDir
		it.RunnerOffset = 0
	}
}

func (f *Food) points(ft FoodType) int {
	switch ft {
	case FoodBonus:
		return f.cfg.Points.Bonus
	case FoodGolden:
		return f.cfg.Points.Golden
	default:
		return f.cfg.Points.Normal
	}
}

type cellSet map[core.Vec2]struct{}

func newCellSet(cells []core.Vec2) cellSet {
	set := make(cellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

// findFreeCell probes random cells first and then scans row by row.
func findFreeCell(rng *rand.Rand, gridSize int, occupied cellSet, attempts int) (core.Vec2, bool) {
	free := func(p core.Vec2) bool {
		_, taken := occupied[p]
		return !taken
	}
	for i := 0; i < attempts; i++ {
		p := core.V(rng.Intn(gridSize), rng.Intn(gridSize))
		if free(p) {
			return p, true
		}
	}
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			if p := core.V(x, y); free(p) {
				return p, true
			}
		}
	}
	return core.Vec2{}, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
