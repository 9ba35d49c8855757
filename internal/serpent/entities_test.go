package serpent

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
)

func snakeAt(dir core.Direction, cells ...core.Vec2) *Snake {
	s := NewSnake(len(cells))
	for _, c := range cells {
		s.Segments = append(s.Segments, Segment{X: c.X, Y: c.Y, PrevX: c.X, PrevY: c.Y})
	}
	s.Direction = dir
	s.Alive = true
	return s
}

func TestSnakeInitAndMove(t *testing.T) {
	s := NewSnake(3)
	s.Init(20)

	expected := []core.Vec2{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	for i, e := range expected {
		if s.Segments[i].Pos() != e {
			t.Fatalf("segment %d = %v, expected %v", i, s.Segments[i].Pos(), e)
		}
		if s.Segments[i].PrevX != e.X || s.Segments[i].PrevY != e.Y {
			t.Errorf("segment %d history should equal its position", i)
		}
	}
	if s.Direction != core.DirRight || !s.Alive {
		t.Errorf("Init should face right and be alive")
	}

	res := s.Move(core.DirRight, 20, config.BoundaryWrap)
	if res.HitWall || res.NewHead != core.V(11, 10) {
		t.Errorf("Move() = %+v, expected head (11,10) and no wall", res)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}
	if tail := s.Segments[2]; tail.Pos() != core.V(9, 10) || tail.PrevX != 8 {
		t.Errorf("tail = %+v, expected (9,10) coming from (8,10)", tail)
	}
}

func TestSnakeInitNoOverlap(t *testing.T) {
	for _, grid := range []int{3, 5, 15, 20, 30} {
		for _, length := range []int{1, 2, 3, grid - 1} {
			s := NewSnake(length)
			s.Init(grid)
			seen := map[core.Vec2]bool{}
			for _, seg := range s.Segments {
				if seen[seg.Pos()] {
					t.Fatalf("grid %d length %d: duplicate cell %v", grid, length, seg.Pos())
				}
				if !seg.Pos().InGrid(grid) {
					t.Fatalf("grid %d length %d: cell %v off grid", grid, length, seg.Pos())
				}
				seen[seg.Pos()] = true
			}
		}
	}
}

func TestSnakeWrap(t *testing.T) {
	tests := []struct {
		name     string
		start    core.Vec2
		dir      core.Direction
		expected core.Vec2
	}{
		{"left edge", core.V(0, 5), core.DirLeft, core.V(19, 5)},
		{"right edge", core.V(19, 5), core.DirRight, core.V(0, 5)},
		{"top edge", core.V(5, 0), core.DirUp, core.V(5, 19)},
		{"bottom edge", core.V(5, 19), core.DirDown, core.V(5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snakeAt(tc.dir, tc.start)
			res := s.Move(tc.dir, 20, config.BoundaryWrap)
			if res.HitWall {
				t.Error("wrap mode must never report a wall")
			}
			if s.Head() != tc.expected {
				t.Errorf("head = %v, expected %v", s.Head(), tc.expected)
			}
			if !s.Head().InGrid(20) {
				t.Errorf("head %v left the grid", s.Head())
			}
		})
	}
}

func TestSnakeWall(t *testing.T) {
	tests := []struct {
		name  string
		start core.Vec2
		dir   core.Direction
	}{
		{"left", core.V(0, 5), core.DirLeft},
		{"right", core.V(19, 5), core.DirRight},
		{"up", core.V(5, 0), core.DirUp},
		{"down", core.V(5, 19), core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snakeAt(tc.dir, tc.start)
			if res := s.Move(tc.dir, 20, config.BoundaryWall); !res.HitWall {
				t.Error("expected HitWall")
			}
			s.WrapHead(20)
			if !s.Head().InGrid(20) {
				t.Errorf("WrapHead left head at %v", s.Head())
			}
		})
	}

	s := snakeAt(core.DirRight, core.V(5, 5))
	if res := s.Move(core.DirRight, 20, config.BoundaryWall); res.HitWall {
		t.Error("inner move should not hit a wall")
	}
}

func TestSnakeGrowth(t *testing.T) {
	s := NewSnake(3)
	s.Init(20)

	s.Grow(2)
	s.Move(core.DirRight, 20, config.BoundaryWrap)
	s.Move(core.DirRight, 20, config.BoundaryWrap)
	if s.Len() != 5 {
		t.Fatalf("Len() after 2 growth moves = %d, expected 5", s.Len())
	}
	s.Move(core.DirRight, 20, config.BoundaryWrap)
	if s.Len() != 5 || s.GrowthPending != 0 {
		t.Errorf("Len() = %d pending %d, expected 5 and 0", s.Len(), s.GrowthPending)
	}

	s.Grow(0)
	if s.GrowthPending != 1 {
		t.Errorf("Grow(0) should queue one segment, pending = %d", s.GrowthPending)
	}
}

func TestSnakeSelfCollision(t *testing.T) {
	s := snakeAt(core.DirUp, core.V(5, 5), core.V(5, 6), core.V(6, 6), core.V(6, 5), core.V(6, 4))
	if s.CheckSelfCollision() {
		t.Fatal("no overlap yet")
	}
	// Turning right into (6,5) bites the body.
	s.Move(core.DirRight, 20, config.BoundaryWrap)
	if !s.CheckSelfCollision() {
		t.Error("expected self collision")
	}
	if !s.Occupies(core.V(5, 6)) {
		t.Error("Occupies should see body cells")
	}
}

func TestFoodTable(t *testing.T) {
	cfg := config.Default().Food
	all := []FoodType{FoodNormal, FoodBonus, FoodGolden}

	tests := []struct {
		name     string
		allowed  []FoodType
		roll     float64
		expected FoodType
	}{
		{"golden band", all, 0.01, FoodGolden},
		{"bonus band", all, 0.10, FoodBonus},
		{"normal band", all, 0.50, FoodNormal},
		{"no golden gives bonus", []FoodType{FoodNormal, FoodBonus}, 0.01, FoodBonus},
		{"no golden normal", []FoodType{FoodNormal, FoodBonus}, 0.25, FoodNormal},
		{"single type", []FoodType{FoodGolden}, 0.99, FoodGolden},
		{"no normal", []FoodType{FoodBonus, FoodGolden}, 0.90, FoodBonus},
		{"normal only pair", []FoodType{FoodNormal, FoodGolden}, 0.10, FoodNormal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := foodTable(cfg, tc.allowed).At(tc.roll); got != tc.expected {
				t.Errorf("At(%v) = %v, expected %v", tc.roll, got, tc.expected)
			}
		})
	}
}

func TestWeightTable(t *testing.T) {
	var empty WeightTable[string]
	if _, ok := empty.Pick(rand.New(rand.NewSource(1))); ok {
		t.Error("empty table should not pick")
	}

	var wt WeightTable[string]
	wt.Add("a", 1)
	wt.Add("skip", 0)
	wt.Add("b", 3)
	if wt.Len() != 2 || wt.Total() != 4 {
		t.Fatalf("Len %d Total %v, expected 2 and 4", wt.Len(), wt.Total())
	}
	if wt.At(0.5) != "a" || wt.At(1) != "b" || wt.At(100) != "b" {
		t.Error("bands are wrong")
	}
}

func TestFoodSpawnAvoidsOccupied(t *testing.T) {
	f := NewFood(config.Default().Food, rand.New(rand.NewSource(3)))

	var occupied []core.Vec2
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x != 2 || y != 1 {
				occupied = append(occupied, core.V(x, y))
			}
		}
	}
	if !f.Spawn(3, occupied, []FoodType{FoodNormal}, false) {
		t.Fatal("one cell is free")
	}
	if f.Item.Pos != core.V(2, 1) || f.Item.Points != 10 {
		t.Errorf("item = %+v, expected (2,1) worth 10", f.Item)
	}

	occupied = append(occupied, core.V(2, 1))
	if f.Spawn(3, occupied, []FoodType{FoodNormal}, false) {
		t.Error("full grid should not spawn")
	}
	if f.Item != nil {
		t.Error("failed spawn should leave the slot empty")
	}
}

func TestFoodRunner(t *testing.T) {
	f := NewFood(config.Default().Food, rand.New(rand.NewSource(1)))
	f.Item = &FoodItem{Pos: core.V(5, 3), Runner: true, RunnerDir: 1}

	f.AdvanceRunner(600*time.Millisecond, 10)
	if f.Item.Pos.X != 5 || f.Item.RunnerOffset <= 0 {
		t.Fatalf("partial step moved the cell: %+v", f.Item)
	}
	f.AdvanceRunner(700*time.Millisecond, 10)
	if f.Item.Pos.X != 6 {
		t.Fatalf("x = %d, expected 6", f.Item.Pos.X)
	}

	f.Item = &FoodItem{Pos: core.V(8, 3), Runner: true, RunnerDir: 1}
	f.AdvanceRunner(1300*time.Millisecond, 10)
	if f.Item.Pos.X != 9 || f.Item.RunnerDir != -1 || f.Item.RunnerOffset != 0 {
		t.Errorf("runner should bounce at the last column: %+v", f.Item)
	}

	f.Item = &FoodItem{Pos: core.V(4, 4)}
	f.AdvanceRunner(5*time.Second, 10)
	if f.Item.Pos != core.V(4, 4) {
		t.Error("normal food must not move")
	}
}

func TestFoodPullToward(t *testing.T) {
	f := NewFood(config.Default().Food, nil)
	f.Item = &FoodItem{Pos: core.V(5, 5)}

	f.PullToward(core.V(8, 2))
	if f.Item.Pos != core.V(6, 4) {
		t.Errorf("pos = %v, expected (6,4)", f.Item.Pos)
	}
	f.PullToward(core.V(6, 9))
	if f.Item.Pos != core.V(6, 5) {
		t.Errorf("pos = %v, expected (6,5)", f.Item.Pos)
	}
}

func TestObstacleManager(t *testing.T) {
	m := NewObstacleManager()
	m.SetObstacles([]config.ObstacleData{
		{Segments: []core.Vec2{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 40, Y: 1}}},
		{Segments: []core.Vec2{{X: -1, Y: 0}}},
	}, 20)

	if len(m.Obstacles()) != 1 {
		t.Fatalf("obstacles = %d, expected the off-grid one dropped", len(m.Obstacles()))
	}
	if len(m.AllCells()) != 2 {
		t.Errorf("cells = %v, expected 2", m.AllCells())
	}
	if !m.IsObstacle(core.V(2, 1)) || m.IsObstacle(core.V(40, 1)) {
		t.Error("IsObstacle wrong")
	}

	m.Clear()
	if m.IsObstacle(core.V(1, 1)) || len(m.AllCells()) != 0 {
		t.Error("Clear should drop every cell")
	}
}

func TestEffectsLabel(t *testing.T) {
	var e Effects
	if e.Label() != "" {
		t.Error("empty set has no label")
	}
	e = e.With(PowerUpMagnet).With(PowerUpGhost)
	if got := e.Label(); got != "GHOST + MAGNET" {
		t.Errorf("Label() = %q", got)
	}
}
