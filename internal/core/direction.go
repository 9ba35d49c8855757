package core

// Direction represents a movement direction on the grid.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit grid step for the direction.
func (d Direction) Delta() Vec2 {
	switch d {
	case DirUp:
		return Vec2{X: 0, Y: -1}
	case DirDown:
		return Vec2{X: 0, Y: 1}
	case DirLeft:
		return Vec2{X: -1, Y: 0}
	case DirRight:
		return Vec2{X: 1, Y: 0}
	default:
		return Vec2{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// IsOpposite checks if two directions are opposite.
func (d Direction) IsOpposite(o Direction) bool {
	return d.Opposite() == o
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
