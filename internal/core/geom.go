// Package core provides fundamental types and utilities for Neon Serpent.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"math"
	"math/rand"
)

// Vec2 is an integer grid coordinate.
type Vec2 struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// V returns a Vec2 for the given coordinates.
func V(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// InGrid reports whether v lies inside a square grid of the given size.
func (v Vec2) InGrid(size int) bool {
	return v.X >= 0 && v.X < size && v.Y >= 0 && v.Y < size
}

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Wrap maps v into [0, size). Negative values wrap from the far edge.
func Wrap(v, size int) int {
	if size <= 0 {
		return 0
	}
	return ((v % size) + size) % size
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RandomInt returns a uniform integer in [min, max] (inclusive).
func RandomInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// RandomFloat returns a uniform float in [min, max).
func RandomFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CanvasSize returns the side length of the square board for a grid,
// measured in the host's drawing units.
func CanvasSize(gridSize, cellSize int) int {
	return gridSize * cellSize
}

// FitScale returns the aspect-preserving factor that fits content of
// contentW x contentH into a viewW x viewH window, reduced by margin
// (1.0 means edge to edge).
func FitScale(contentW, contentH, viewW, viewH int, margin float64) float64 {
	if contentW <= 0 || contentH <= 0 {
		return 0
	}
	sx := float64(viewW) / float64(contentW)
	sy := float64(viewH) / float64(contentH)
	return math.Min(sx, sy) * margin
}
