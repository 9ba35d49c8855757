package serpent

import (
	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
)

// Snake is the player. Segments[0] is the head.
type Snake struct {
	Segments      []Segment
	Direction     core.Direction
	GrowthPending int
	Alive         bool

	initialLength int
}

// MoveResult reports the outcome of one step.
type MoveResult struct {
	HitWall bool
	NewHead core.Vec2
}

// NewSnake returns a snake that starts with initialLength segments.
func NewSnake(initialLength int) *Snake {
	if initialLength < 1 {
		initialLength = 1
	}
	return &Snake{initialLength: initialLength}
}

// Init places the snake horizontally at the grid centre, heading right.
func (s *Snake) Init(gridSize int) {
	start := gridSize / 2
	s.Segments = s.Segments[:0]
	for i := 0; i < s.initialLength; i++ {
		x := core.Wrap(start-i, gridSize)
		s.Segments = append(s.Segments, Segment{X: x, Y: start, PrevX: x, PrevY: start})
	}
	s.Direction = core.DirRight
	s.GrowthPending = 0
	s.Alive = true
}

// Move advances one cell in dir. In wrap mode the head re-enters from the
// opposite edge; in wall mode an off-grid head is reported via HitWall and
// left off-grid for the caller to judge.
func (s *Snake) Move(dir core.Direction, gridSize int, mode config.BoundaryMode) MoveResult {
	s.Direction = dir
	for i := range s.Segments {
		s.Segments[i].PrevX = s.Segments[i].X
		s.Segments[i].PrevY = s.Segments[i].Y
	}

	head := s.Head().Add(dir.Delta())
	hitWall := false
	if mode == config.BoundaryWall {
		hitWall = !head.InGrid(gridSize)
	} else {
		head.X = core.Wrap(head.X, gridSize)
		head.Y = core.Wrap(head.Y, gridSize)
	}

	tail := s.Segments[len(s.Segments)-1]
	for i := len(s.Segments) - 1; i > 0; i-- {
		s.Segments[i].X = s.Segments[i-1].X
		s.Segments[i].Y = s.Segments[i-1].Y
	}
	s.Segments[0].X = head.X
	s.Segments[0].Y = head.Y

	if s.GrowthPending > 0 {
		s.Segments = append(s.Segments, Segment{X: tail.X, Y: tail.Y, PrevX: tail.X, PrevY: tail.Y})
		s.GrowthPending--
	}

	return MoveResult{HitWall: hitWall, NewHead: head}
}

// WrapHead pulls an off-grid head back onto the board.
func (s *Snake) WrapHead(gridSize int) {
	s.Segments[0].X = core.Wrap(s.Segments[0].X, gridSize)
	s.Segments[0].Y = core.Wrap(s.Segments[0].Y, gridSize)
}

// Grow schedules n extra segments. Values below 1 count as 1.
func (s *Snake) Grow(n int) {
	if n < 1 {
		n = 1
	}
	s.GrowthPending += n
}

// CheckSelfCollision reports whether the head overlaps the body.
func (s *Snake) CheckSelfCollision() bool {
	head := s.Head()
	for _, seg := range s.Segments[1:] {
		if seg.Pos() == head {
			return true
		}
	}
	return false
}

// Head returns the head cell.
func (s *Snake) Head() core.Vec2 {
	return s.Segments[0].Pos()
}

// Occupies reports whether any segment is on p.
func (s *Snake) Occupies(p core.Vec2) bool {
	for _, seg := range s.Segments {
		if seg.Pos() == p {
			return true
		}
	}
	return false
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.Segments)
}
