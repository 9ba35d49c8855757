package engine

import (
	"time"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// ScreenHandler is the behaviour of one state of a StateMachine.
type ScreenHandler[S comparable] interface {
	Enter(prev S)
	Exit(next S)
	Update(dt time.Duration)
	Render(dst *core.Screen, alpha float64)
	HandleInput(key string)
}

// StateMachine switches between mutually exclusive screens.
// Update, Render and HandleInput only ever reach the current handler.
type StateMachine[S comparable] struct {
	handlers map[S]ScreenHandler[S]
	current  S
}

// NewStateMachine creates a machine sitting in initial. No Enter call is
// made for the initial state; callers transition explicitly to start.
func NewStateMachine[S comparable](initial S) *StateMachine[S] {
	return &StateMachine[S]{
		handlers: make(map[S]ScreenHandler[S]),
		current:  initial,
	}
}

// Register binds a handler to a state, replacing any earlier binding.
func (m *StateMachine[S]) Register(state S, h ScreenHandler[S]) {
	m.handlers[state] = h
}

// Current returns the active state.
func (m *StateMachine[S]) Current() S {
	return m.current
}

// Handler returns the handler of the active state, or nil.
func (m *StateMachine[S]) Handler() ScreenHandler[S] {
	return m.handlers[m.current]
}

// TransitionTo exits the current handler, switches, then enters the new one.
func (m *StateMachine[S]) TransitionTo(next S) {
	prev := m.current
	if h := m.handlers[prev]; h != nil {
		h.Exit(next)
	}
	m.current = next
	if h := m.handlers[next]; h != nil {
		h.Enter(prev)
	}
}

// Update forwards a fixed tick to the current handler.
func (m *StateMachine[S]) Update(dt time.Duration) {
	if h := m.Handler(); h != nil {
		h.Update(dt)
	}
}

// Render draws the current handler.
func (m *StateMachine[S]) Render(dst *core.Screen, alpha float64) {
	if h := m.Handler(); h != nil {
		h.Render(dst, alpha)
	}
}

// HandleInput forwards a key press to the current handler.
func (m *StateMachine[S]) HandleInput(key string) {
	if h := m.Handler(); h != nil {
		h.HandleInput(key)
	}
}
