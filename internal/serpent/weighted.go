package serpent

import (
	"math/rand"

	"github.com/vovakirdan/neon-serpent/internal/config"
)

// WeightTable picks items by cumulative weight with one uniform draw.
// Weights need not sum to 1.
type WeightTable[T any] struct {
	items []T
	cum   []float64
}

// Add appends item with weight w. Non-positive weights are skipped.
func (t *WeightTable[T]) Add(item T, w float64) {
	if w <= 0 {
		return
	}
	total := w
	if n := len(t.cum); n > 0 {
		total += t.cum[n-1]
	}
	t.items = append(t.items, item)
	t.cum = append(t.cum, total)
}

// Total returns the sum of weights.
func (t *WeightTable[T]) Total() float64 {
	if len(t.cum) == 0 {
		return 0
	}
	return t.cum[len(t.cum)-1]
}

// Len returns the number of items.
func (t *WeightTable[T]) Len() int {
	return len(t.items)
}

// Pick draws one item. ok is false for an empty table.
func (t *WeightTable[T]) Pick(rng *rand.Rand) (item T, ok bool) {
	if len(t.items) == 0 {
		return item, false
	}
	return t.At(rng.Float64() * t.Total()), true
}

// At returns the item whose cumulative band contains roll.
// Rolls past the end return the last item.
func (t *WeightTable[T]) At(roll float64) T {
	for i, c := range t.cum {
		if roll < c {
			return t.items[i]
		}
	}
	return t.items[len(t.items)-1]
}

// powerUpTable builds the spawn table from config weights.
func powerUpTable(cfg config.PowerUpTypes) *WeightTable[PowerUpType] {
	t := &WeightTable[PowerUpType]{}
	for _, p := range PowerUpTypes {
		t.Add(p, tuning(cfg, p).Weight)
	}
	return t
}

// foodTable builds the type table for a level. Golden takes the first
// GoldenChance of the roll, Bonus the rest of the first BonusChance, and
// the remainder goes to Normal. When a type is not allowed its band falls
// through to the next allowed one.
func foodTable(cfg config.FoodConfig, allowed []FoodType) *WeightTable[FoodType] {
	has := func(ft FoodType) bool {
		for _, a := range allowed {
			if a == ft {
				return true
			}
		}
		return false
	}

	t := &WeightTable[FoodType]{}
	if len(allowed) == 1 {
		t.Add(allowed[0], 1)
		return t
	}

	used := 0.0
	if has(FoodGolden) {
		t.Add(FoodGolden, cfg.GoldenChance)
		used = cfg.GoldenChance
	}
	switch {
	case has(FoodBonus) && has(FoodNormal):
		t.Add(FoodBonus, cfg.BonusChance-used)
		t.Add(FoodNormal, 1-cfg.BonusChance)
	case has(FoodBonus):
		t.Add(FoodBonus, 1-used)
	default:
		t.Add(FoodNormal, 1-used)
	}
	return t
}
