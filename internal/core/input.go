package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key names understood by the game. They match the strings Bubble Tea
// reports for key presses, so the platform layer can forward them unchanged.
const (
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyW         = "w"
	KeyA         = "a"
	KeyS         = "s"
	KeyD         = "d"
	KeyH         = "h"
	KeyR         = "r"
	KeyEnter     = "enter"
	KeyEscape    = "esc"
	KeySpace     = " "
	KeyBackspace = "backspace"
)

// NormalizeKey folds the aliases different hosts use for the same key:
// single letters are lower-cased and "space" becomes " ".
func NormalizeKey(key string) string {
	switch key {
	case "space":
		return KeySpace
	case "escape":
		return KeyEscape
	case "return":
		return KeyEnter
	}
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToLower(key)
	}
	return key
}

// KeyDirection maps arrow keys and WASD to a direction.
func KeyDirection(key string) (Direction, bool) {
	switch NormalizeKey(key) {
	case KeyUp, KeyW:
		return DirUp, true
	case KeyDown, KeyS:
		return DirDown, true
	case KeyLeft, KeyA:
		return DirLeft, true
	case KeyRight, KeyD:
		return DirRight, true
	default:
		return 0, false
	}
}

// IsUpKey reports whether key moves a menu cursor up.
func IsUpKey(key string) bool {
	d, ok := KeyDirection(key)
	return ok && d == DirUp
}

// IsDownKey reports whether key moves a menu cursor down.
func IsDownKey(key string) bool {
	d, ok := KeyDirection(key)
	return ok && d == DirDown
}

// IsLeftKey reports whether key cycles a selector backwards.
func IsLeftKey(key string) bool {
	d, ok := KeyDirection(key)
	return ok && d == DirLeft
}

// IsRightKey reports whether key cycles a selector forwards.
func IsRightKey(key string) bool {
	d, ok := KeyDirection(key)
	return ok && d == DirRight
}

// TextRune returns the printable rune for a single-character key press,
// used by text fields. Control keys return false.
func TextRune(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 0, false
	}
	return r, true
}
