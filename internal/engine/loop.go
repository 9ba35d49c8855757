package engine

import "time"

// MaxFrameDelta caps the elapsed time a single frame may feed into the
// accumulator, so a long stall does not trigger a burst of catch-up ticks.
const MaxFrameDelta = 200 * time.Millisecond

// Loop is a fixed-timestep accumulator. The host calls Frame once per
// rendered frame; Loop turns elapsed wall time into zero or more update
// calls of exactly TickRate each, then one render call with the
// interpolation factor for the leftover time.
type Loop struct {
	tickRate    time.Duration
	update      func(dt time.Duration)
	render      func(alpha float64)
	running     bool
	last        time.Time
	accumulator time.Duration
}

// NewLoop creates a stopped loop.
func NewLoop(tickRate time.Duration, update func(dt time.Duration), render func(alpha float64)) *Loop {
	return &Loop{
		tickRate: tickRate,
		update:   update,
		render:   render,
	}
}

// Start begins accepting frames. Calling Start on a running loop is a no-op.
func (l *Loop) Start(now time.Time) {
	if l.running {
		return
	}
	l.running = true
	l.last = now
	l.accumulator = 0
}

// Stop halts the loop. Further frames are ignored until Start.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether the loop accepts frames.
func (l *Loop) Running() bool {
	return l.running
}

// TickRate returns the current simulation step.
func (l *Loop) TickRate() time.Duration {
	return l.tickRate
}

// SetTickRate changes the simulation step. It takes effect on the next
// update call, even within the current frame.
func (l *Loop) SetTickRate(d time.Duration) {
	if d <= 0 {
		return
	}
	l.tickRate = d
}

// Alpha returns the fraction of a tick currently sitting in the accumulator.
func (l *Loop) Alpha() float64 {
	if l.tickRate <= 0 {
		return 0
	}
	return float64(l.accumulator) / float64(l.tickRate)
}

// Frame advances the loop to now and returns how many updates ran.
func (l *Loop) Frame(now time.Time) int {
	if !l.running {
		return 0
	}

	dt := now.Sub(l.last)
	l.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	l.accumulator += dt

	steps := 0
	for l.running && l.accumulator >= l.tickRate {
		step := l.tickRate
		if l.update != nil {
			l.update(step)
		}
		l.accumulator -= step
		steps++
	}

	// Stopping mid-frame can leave a full tick behind; keep alpha below 1.
	if l.accumulator >= l.tickRate {
		l.accumulator = l.tickRate - 1
	}

	if l.render != nil {
		l.render(l.Alpha())
	}
	return steps
}
