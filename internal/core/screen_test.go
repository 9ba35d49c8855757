package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCyan)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected X/cyan", cell)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAndCountsRunes(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(2, 0, "►abcdef")

	if got := s.Row(0); got != "  ►abc" {
		t.Errorf("Row(0) = %q, expected %q", got, "  ►abc")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ab", ColorYellow)

	if s.Get(4, 0) != 'a' || s.Get(5, 0) != 'b' {
		t.Errorf("Row(0) = %q, expected text centred", s.Row(0))
	}
	if s.GetCell(4, 0).Color != ColorYellow {
		t.Error("centred text should keep its colour")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorDefault)

	expected := []string{
		"┌───┐",
		"│   │",
		"└───┘",
	}
	if got := s.String(); got != strings.Join(expected, "\n") {
		t.Errorf("String() =\n%s\nexpected\n%s", got, strings.Join(expected, "\n"))
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(0, 0, 4, 4), '#', ColorRed)
	s.Resize(6, 2)

	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("Resize() produced %dx%d", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear the buffer")
	}

	s.DrawRect(NewRect(0, 0, 2, 2), '#', ColorRed)
	s.Clear()
	if s.GetCell(1, 1) != (Cell{Rune: ' ', Color: ColorDefault}) {
		t.Error("Clear should reset runes and colours")
	}
}

func TestColorNames(t *testing.T) {
	tests := []struct {
		c      Color
		name   string
		bright bool
	}{
		{ColorDefault, "default", false},
		{ColorCyan, "cyan", false},
		{ColorBrightRed, "bright-red", true},
		{ColorBrightWhite, "bright-white", true},
		{ColorOrange, "orange", false},
		{Color(200), "unknown", false},
	}
	for _, tc := range tests {
		if tc.c.String() != tc.name || tc.c.Bright() != tc.bright {
			t.Errorf("%d: String() = %q Bright() = %v, expected %q %v", tc.c, tc.c.String(), tc.c.Bright(), tc.name, tc.bright)
		}
	}
}
