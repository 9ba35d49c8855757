package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		v, size  int
		expected int
	}{
		{name: "inside", v: 5, size: 20, expected: 5},
		{name: "one past right edge", v: 20, size: 20, expected: 0},
		{name: "one before left edge", v: -1, size: 20, expected: 19},
		{name: "far negative", v: -41, size: 20, expected: 19},
		{name: "zero size", v: 3, size: 0, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.v, tc.size); got != tc.expected {
				t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.v, tc.size, got, tc.expected)
			}
		})
	}
}

func TestVec2InGrid(t *testing.T) {
	tests := []struct {
		p        Vec2
		expected bool
	}{
		{V(0, 0), true},
		{V(19, 19), true},
		{V(20, 0), false},
		{V(0, -1), false},
	}

	for _, tc := range tests {
		if got := tc.p.InGrid(20); got != tc.expected {
			t.Errorf("%v.InGrid(20) = %v, expected %v", tc.p, got, tc.expected)
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	start := V(5, 5)
	tests := []struct {
		dir      Direction
		expected Vec2
	}{
		{DirUp, V(5, 4)},
		{DirDown, V(5, 6)},
		{DirLeft, V(4, 5)},
		{DirRight, V(6, 5)},
	}

	for _, tc := range tests {
		if got := start.Add(tc.dir.Delta()); got != tc.expected {
			t.Errorf("%s: got %v, expected %v", tc.dir, got, tc.expected)
		}
		if !tc.dir.IsOpposite(tc.dir.Opposite()) {
			t.Errorf("%s should be opposite of %s", tc.dir, tc.dir.Opposite())
		}
	}
}

func TestRandomIntInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seenMin, seenMax := false, false
	for range 1000 {
		v := RandomInt(rng, 3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("RandomInt out of range: %d", v)
		}
		seenMin = seenMin || v == 3
		seenMax = seenMax || v == 5
	}
	if !seenMin || !seenMax {
		t.Error("RandomInt should reach both bounds")
	}
	if got := RandomInt(rng, 7, 7); got != 7 {
		t.Errorf("RandomInt(7, 7) = %d, expected 7", got)
	}
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp() = %f, expected 12.5", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp() = %d, expected 10", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp() = %d, expected 0", got)
	}
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF() = %f, expected 1", got)
	}
	if got := Abs(-4); got != 4 {
		t.Errorf("Abs() = %d, expected 4", got)
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name           string
		cw, ch, vw, vh int
		margin         float64
		expected       float64
	}{
		{name: "width bound", cw: 400, ch: 400, vw: 800, vh: 1000, margin: 0.9, expected: 1.8},
		{name: "height bound", cw: 400, ch: 400, vw: 1000, vh: 400, margin: 1, expected: 1},
		{name: "empty content", cw: 0, ch: 400, vw: 1000, vh: 400, margin: 1, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FitScale(tc.cw, tc.ch, tc.vw, tc.vh, tc.margin)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("FitScale() = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	if !r.Contains(10, 10) {
		t.Error("should contain top-left corner")
	}
	if r.Contains(15, 15) {
		t.Error("should not contain point past bottom-right edge")
	}
	if r.Right() != 15 || r.Bottom() != 15 {
		t.Errorf("Right/Bottom = %d/%d, expected 15/15", r.Right(), r.Bottom())
	}
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		key      string
		expected Direction
		ok       bool
	}{
		{"up", DirUp, true},
		{"W", DirUp, true},
		{"a", DirLeft, true},
		{"down", DirDown, true},
		{"d", DirRight, true},
		{"x", 0, false},
		{"enter", 0, false},
	}

	for _, tc := range tests {
		got, ok := KeyDirection(tc.key)
		if ok != tc.ok || (ok && got != tc.expected) {
			t.Errorf("KeyDirection(%q) = %v, %v; expected %v, %v", tc.key, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestTextRune(t *testing.T) {
	if r, ok := TextRune("k"); !ok || r != 'k' {
		t.Errorf("TextRune(k) = %q, %v", r, ok)
	}
	if _, ok := TextRune("enter"); ok {
		t.Error("TextRune should reject named keys")
	}
	if _, ok := TextRune("!"); ok {
		t.Error("TextRune should reject punctuation")
	}
	if NormalizeKey("space") != KeySpace {
		t.Error("NormalizeKey(space) should map to a single space")
	}
}
