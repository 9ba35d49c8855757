package serpent

import "github.com/vovakirdan/neon-serpent/internal/core"

// CollisionResult is the outcome of one collision check.
type CollisionResult struct {
	AteFood     bool
	AtePowerUp  bool
	PowerUpType PowerUpType
	HitSelf     bool
	HitWall     bool
	HitObstacle bool

	// Absorbed is set when a shield cancelled a fatal hit. The caller must
	// consume the shield exactly once.
	Absorbed bool
}

// Fatal reports whether the snake dies.
func (r CollisionResult) Fatal() bool {
	return r.HitSelf || r.HitWall || r.HitObstacle
}

// CollisionSystem resolves what the head touched after a move.
type CollisionSystem struct{}

// Check inspects the head after a move. Pickups are reported even when
// the move is fatal. Ghost suppresses every fatal hit; otherwise a shield
// absorbs them all at once.
func (CollisionSystem) Check(snake *Snake, food *Food, obstacles *ObstacleManager, powerUp *PowerUpEntity, hitWall bool, effects Effects) CollisionResult {
	head := snake.Head()
	var r CollisionResult

	if food.Item != nil && food.Item.Pos == head {
		r.AteFood = true
	}
	if powerUp.Item != nil && powerUp.Item.Pos == head {
		r.AtePowerUp = true
		r.PowerUpType = powerUp.Item.Type
	}

	if effects.Has(PowerUpGhost) {
		return r
	}

	r.HitWall = hitWall
	r.HitSelf = snake.CheckSelfCollision()
	r.HitObstacle = obstacles.IsObstacle(head)

	if r.Fatal() && effects.Has(PowerUpShield) {
		r.HitWall = false
		r.HitSelf = false
		r.HitObstacle = false
		r.Absorbed = true
	}
	return r
}

// OccupiedCells lists every cell a new item must avoid.
func (CollisionSystem) OccupiedCells(snake *Snake, obstacles *ObstacleManager, food *Food, powerUp *PowerUpEntity) []core.Vec2 {
	cells := make([]core.Vec2, 0, snake.Len()+8)
	for _, seg := range snake.Segments {
		cells = append(cells, seg.Pos())
	}
	cells = append(cells, obstacles.AllCells()...)
	if food.Item != nil {
		cells = append(cells, food.Item.Pos)
	}
	if powerUp.Item != nil {
		cells = append(cells, powerUp.Item.Pos)
	}
	return cells
}
