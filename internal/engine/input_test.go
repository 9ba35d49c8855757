package engine

import (
	"testing"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// tap presses and releases a key, the way a terminal host delivers it.
func tap(im *InputManager, key string) {
	im.KeyDown(key)
	im.KeyUp(key)
}

func TestInputRejectsReversal(t *testing.T) {
	im := NewInputManager()

	tap(im, "left")
	if len(im.Pending()) != 0 {
		t.Errorf("reversing the current direction should be rejected, pending = %v", im.Pending())
	}

	tap(im, "up")
	tap(im, "down")
	pending := im.Pending()
	if len(pending) != 1 || pending[0] != core.DirUp {
		t.Errorf("pending = %v, expected [up]", pending)
	}
}

func TestInputQueueDepth(t *testing.T) {
	im := NewInputManager()

	tap(im, "up")
	tap(im, "left")
	tap(im, "down")

	if got := len(im.Pending()); got != MaxQueuedDirections {
		t.Fatalf("queue length = %d, expected %d", got, MaxQueuedDirections)
	}
	if d := im.ConsumeDirection(); d != core.DirUp {
		t.Errorf("first consume = %v, expected up", d)
	}
	if d := im.ConsumeDirection(); d != core.DirLeft {
		t.Errorf("second consume = %v, expected left", d)
	}
	if d := im.ConsumeDirection(); d != core.DirLeft {
		t.Errorf("empty queue should keep current, got %v", d)
	}
}

func TestInputHeldKeyDedup(t *testing.T) {
	im := NewInputManager()

	if !im.KeyDown("w") {
		t.Fatal("first press should be accepted")
	}
	if im.KeyDown("W") {
		t.Error("repeat of a held key should be ignored")
	}
	if !im.IsKeyDown("w") {
		t.Error("w should be held")
	}
	im.KeyUp("w")
	if im.IsKeyDown("w") {
		t.Error("w should be released")
	}
}

func TestInputResetAndCallbacks(t *testing.T) {
	im := NewInputManager()
	fired := 0
	im.OnKey("esc", func() { fired++ })

	tap(im, "esc")
	tap(im, "up")
	im.ResetDirection(core.DirLeft)

	if fired != 1 {
		t.Errorf("callback fired %d times, expected 1", fired)
	}
	if len(im.Pending()) != 0 || im.CurrentDirection() != core.DirLeft {
		t.Errorf("ResetDirection should clear queue and set current")
	}

	im.ClearCallbacks()
	tap(im, "esc")
	if fired != 1 {
		t.Error("callbacks should be cleared")
	}
}
