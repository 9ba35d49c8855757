package serpent

import (
	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
)

// ObstacleManager holds the blocked cells of the current level.
type ObstacleManager struct {
	obstacles []config.ObstacleData
	cells     cellSet
}

// NewObstacleManager returns an empty manager.
func NewObstacleManager() *ObstacleManager {
	return &ObstacleManager{cells: cellSet{}}
}

// SetObstacles replaces the layout. Cells outside the grid are dropped and
// obstacles left with no cells are skipped.
func (m *ObstacleManager) SetObstacles(data []config.ObstacleData, gridSize int) {
	m.obstacles = m.obstacles[:0]
	m.cells = cellSet{}
	for _, ob := range data {
		var segs []core.Vec2
		for _, p := range ob.Segments {
			if p.InGrid(gridSize) {
				segs = append(segs, p)
				m.cells[p] = struct{}{}
			}
		}
		if len(segs) > 0 {
			m.obstacles = append(m.obstacles, config.ObstacleData{Segments: segs})
		}
	}
}

// Clear removes every obstacle.
func (m *ObstacleManager) Clear() {
	m.SetObstacles(nil, 0)
}

// IsObstacle reports whether p is blocked.
func (m *ObstacleManager) IsObstacle(p core.Vec2) bool {
	_, ok := m.cells[p]
	return ok
}

// AllCells returns every blocked cell in layout order.
func (m *ObstacleManager) AllCells() []core.Vec2 {
	var out []core.Vec2
	for _, ob := range m.obstacles {
		out = append(out, ob.Segments...)
	}
	return out
}

// Obstacles returns the filtered layout.
func (m *ObstacleManager) Obstacles() []config.ObstacleData {
	return m.obstacles
}
