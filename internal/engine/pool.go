package engine

// Pool recycles short-lived objects so hot per-tick paths do not allocate.
// Unlike sync.Pool it never drops idle objects, so a preallocated pool
// stays warm for the whole session.
type Pool[T any] struct {
	free  []*T
	newFn func() *T
	reset func(*T)
}

// NewPool creates a pool holding initial preallocated objects.
// reset may be nil.
func NewPool[T any](newFn func() *T, reset func(*T), initial int) *Pool[T] {
	p := &Pool[T]{
		free:  make([]*T, 0, initial),
		newFn: newFn,
		reset: reset,
	}
	for range initial {
		p.free = append(p.free, newFn())
	}
	return p
}

// Acquire returns an idle object, allocating one when the pool is empty.
func (p *Pool[T]) Acquire() *T {
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return obj
	}
	return p.newFn()
}

// Release resets obj and returns it to the pool.
func (p *Pool[T]) Release(obj *T) {
	if obj == nil {
		return
	}
	if p.reset != nil {
		p.reset(obj)
	}
	p.free = append(p.free, obj)
}

// Size returns the number of idle objects.
func (p *Pool[T]) Size() int {
	return len(p.free)
}
