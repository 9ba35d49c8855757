// Package serpent implements Neon Serpent: a grid snake game with levels,
// obstacles, combos and timed power-ups. It contains no terminal code; the
// platform layer feeds it frame times and key names and reads back a
// core.Screen.
package serpent

import (
	"strings"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
)

// FoodType is the kind of a food item.
type FoodType int

const (
	FoodNormal FoodType = iota
	FoodBonus
	FoodGolden
)

func (f FoodType) String() string {
	switch f {
	case FoodBonus:
		return config.FoodBonus
	case FoodGolden:
		return config.FoodGolden
	default:
		return config.FoodNormal
	}
}

// ParseFoodType maps a config name to a FoodType.
func ParseFoodType(s string) (FoodType, bool) {
	switch s {
	case config.FoodNormal:
		return FoodNormal, true
	case config.FoodBonus:
		return FoodBonus, true
	case config.FoodGolden:
		return FoodGolden, true
	default:
		return FoodNormal, false
	}
}

// ParseFoodTypes converts config names, skipping unknown ones.
func ParseFoodTypes(names []string) []FoodType {
	out := make([]FoodType, 0, len(names))
	for _, n := range names {
		if ft, ok := ParseFoodType(n); ok {
			out = append(out, ft)
		}
	}
	return out
}

// PowerUpType is the kind of a power-up.
type PowerUpType int

const (
	PowerUpGhost PowerUpType = iota
	PowerUpSlowDown
	PowerUpDoublePoints
	PowerUpMagnet
	PowerUpShield
)

// PowerUpTypes lists every power-up in a fixed order.
var PowerUpTypes = []PowerUpType{
	PowerUpGhost,
	PowerUpSlowDown,
	PowerUpDoublePoints,
	PowerUpMagnet,
	PowerUpShield,
}

func (p PowerUpType) String() string {
	switch p {
	case PowerUpGhost:
		return "ghost"
	case PowerUpSlowDown:
		return "slowdown"
	case PowerUpDoublePoints:
		return "double"
	case PowerUpMagnet:
		return "magnet"
	case PowerUpShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Label is the HUD name of the power-up.
func (p PowerUpType) Label() string {
	return strings.ToUpper(p.String())
}

// Glyph is the two-column board marker of a field item.
func (p PowerUpType) Glyph() string {
	switch p {
	case PowerUpGhost:
		return "GH"
	case PowerUpSlowDown:
		return "SL"
	case PowerUpDoublePoints:
		return "x2"
	case PowerUpMagnet:
		return "MG"
	case PowerUpShield:
		return "SH"
	default:
		return "??"
	}
}

// Color is the display colour of the power-up.
func (p PowerUpType) Color() core.Color {
	switch p {
	case PowerUpGhost:
		return core.ColorMagenta
	case PowerUpSlowDown:
		return core.ColorBrightGreen
	case PowerUpDoublePoints:
		return core.ColorBrightYellow
	case PowerUpMagnet:
		return core.ColorBrightMagenta
	case PowerUpShield:
		return core.ColorBrightCyan
	default:
		return core.ColorWhite
	}
}

func tuning(cfg config.PowerUpTypes, p PowerUpType) config.PowerUpTuning {
	switch p {
	case PowerUpGhost:
		return cfg.Ghost
	case PowerUpSlowDown:
		return cfg.SlowDown
	case PowerUpDoublePoints:
		return cfg.DoublePoints
	case PowerUpMagnet:
		return cfg.Magnet
	default:
		return cfg.Shield
	}
}

// Effects is the set of active power-up types.
type Effects uint8

// Has reports whether p is in the set.
func (e Effects) Has(p PowerUpType) bool {
	return e&(1<<p) != 0
}

// With returns the set plus p.
func (e Effects) With(p PowerUpType) Effects {
	return e | 1<<p
}

// Types lists the members in PowerUpTypes order.
func (e Effects) Types() []PowerUpType {
	var out []PowerUpType
	for _, p := range PowerUpTypes {
		if e.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Label joins member labels, e.g. "GHOST + MAGNET". Empty set gives "".
func (e Effects) Label() string {
	types := e.Types()
	labels := make([]string, len(types))
	for i, p := range types {
		labels[i] = p.Label()
	}
	return strings.Join(labels, " + ")
}

// Segment is one snake cell with its position on the previous tick.
type Segment struct {
	X, Y         int
	PrevX, PrevY int
}

// Pos returns the current cell.
func (s Segment) Pos() core.Vec2 {
	return core.Vec2{X: s.X, Y: s.Y}
}
