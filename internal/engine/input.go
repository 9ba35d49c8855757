package engine

import "github.com/vovakirdan/neon-serpent/internal/core"

// MaxQueuedDirections is the depth of the turn buffer. Two entries let a
// player chain a quick double turn (up then left) inside a single tick.
const MaxQueuedDirections = 2

// InputManager buffers directional input between fixed ticks.
type InputManager struct {
	queue     []core.Direction
	current   core.Direction
	held      map[string]bool
	callbacks map[string]func()
}

// NewInputManager creates an input manager facing right.
func NewInputManager() *InputManager {
	return &InputManager{
		queue:     make([]core.Direction, 0, MaxQueuedDirections),
		current:   core.DirRight,
		held:      make(map[string]bool),
		callbacks: make(map[string]func()),
	}
}

// KeyDown records a key press. A key already held is ignored until KeyUp.
// Direction keys are queued unless they reverse the last queued (or
// current) direction or the queue is full. Returns false for a repeat.
func (im *InputManager) KeyDown(key string) bool {
	key = core.NormalizeKey(key)
	if im.held[key] {
		return false
	}
	im.held[key] = true

	if dir, ok := core.KeyDirection(key); ok {
		if !dir.IsOpposite(im.lastQueued()) && len(im.queue) < MaxQueuedDirections {
			im.queue = append(im.queue, dir)
		}
	}

	if cb := im.callbacks[key]; cb != nil {
		cb()
	}
	return true
}

// KeyUp releases a held key.
func (im *InputManager) KeyUp(key string) {
	delete(im.held, core.NormalizeKey(key))
}

// IsKeyDown reports whether key is currently held.
func (im *InputManager) IsKeyDown(key string) bool {
	return im.held[core.NormalizeKey(key)]
}

// ConsumeDirection pops the oldest queued direction into current and
// returns current. Called once per fixed tick.
func (im *InputManager) ConsumeDirection() core.Direction {
	if len(im.queue) > 0 {
		im.current = im.queue[0]
		im.queue = append(im.queue[:0], im.queue[1:]...)
	}
	return im.current
}

// CurrentDirection returns the direction applied on the last tick.
func (im *InputManager) CurrentDirection() core.Direction {
	return im.current
}

// ResetDirection clears the queue and sets the current direction.
func (im *InputManager) ResetDirection(dir core.Direction) {
	im.current = dir
	im.queue = im.queue[:0]
}

// Pending returns a copy of the queued directions, oldest first.
func (im *InputManager) Pending() []core.Direction {
	out := make([]core.Direction, len(im.queue))
	copy(out, im.queue)
	return out
}

// OnKey registers a callback fired when key goes down. A later
// registration for the same key replaces the earlier one.
func (im *InputManager) OnKey(key string, fn func()) {
	im.callbacks[core.NormalizeKey(key)] = fn
}

// ClearCallbacks removes every key callback.
func (im *InputManager) ClearCallbacks() {
	clear(im.callbacks)
}

func (im *InputManager) lastQueued() core.Direction {
	if n := len(im.queue); n > 0 {
		return im.queue[n-1]
	}
	return im.current
}
