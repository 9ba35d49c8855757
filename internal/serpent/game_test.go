package serpent

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/engine"
	"github.com/vovakirdan/neon-serpent/internal/storage"
)

func newTestGame(t *testing.T, mutate func(*config.Settings)) (*Game, *engine.ManualClock) {
	t.Helper()
	cfg := config.Default()
	settings := storage.NewSettingsManager(storage.NewMemoryKV(), cfg, nil)
	if mutate != nil {
		s := settings.Get()
		mutate(&s)
		settings.Save(s)
	}
	clock := engine.NewManualClock(testEpoch)
	g := New(Options{Config: cfg, Settings: settings, Clock: clock, Seed: 7})
	g.Start(clock.Now())
	return g, clock
}

// step runs n frames of exactly one tick each.
func step(g *Game, clock *engine.ManualClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(g.TickRate())
		g.Frame(clock.Now())
	}
}

func press(g *Game, key string) {
	g.KeyDown(key)
	g.KeyUp(key)
}

func wallMode(s *config.Settings) {
	s.BoundaryMode = config.BoundaryWall
}

func TestStartAndFirstTick(t *testing.T) {
	g, clock := newTestGame(t, nil)
	if g.Screen() != ScreenStart {
		t.Fatalf("Screen() = %v, expected start", g.Screen())
	}

	press(g, "enter")
	if g.Screen() != ScreenPlaying {
		t.Fatalf("Screen() = %v, expected playing", g.Screen())
	}
	snap := g.Snapshot()
	if snap.Head != core.V(10, 10) || snap.SnakeLen != 3 || !snap.HasFood {
		t.Fatalf("fresh game = %+v", snap)
	}
	if snap.TickRate != 150*time.Millisecond {
		t.Errorf("TickRate = %v, expected 150ms", snap.TickRate)
	}

	step(g, clock, 1)
	if head := g.Snapshot().Head; head != core.V(11, 10) {
		t.Errorf("head after one tick = %v, expected (11,10)", head)
	}
}

func TestTurnsAndReversal(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")

	press(g, "left")
	step(g, clock, 1)
	if head := g.Snapshot().Head; head != core.V(11, 10) {
		t.Fatalf("reversal should be ignored, head = %v", head)
	}

	press(g, "w")
	press(g, "a")
	step(g, clock, 2)
	snap := g.Snapshot()
	if snap.Head != core.V(10, 9) || snap.Direction != core.DirLeft {
		t.Errorf("double turn: head %v dir %v, expected (10,9) left", snap.Head, snap.Direction)
	}
}

func TestKeysOutsidePlayingDoNotSteer(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")
	press(g, " ")
	press(g, "down")
	press(g, "up")
	if len(g.InputPending()) != 0 {
		t.Fatalf("menu navigation leaked into the turn buffer: %v", g.InputPending())
	}
	press(g, "esc")
	step(g, clock, 1)
	if g.Snapshot().Direction != core.DirRight {
		t.Error("snake should keep heading right")
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")
	step(g, clock, 3)
	before := g.Snapshot()

	press(g, " ")
	if g.Screen() != ScreenPaused {
		t.Fatalf("Screen() = %v, expected paused", g.Screen())
	}
	step(g, clock, 20)

	press(g, " ")
	if g.Screen() != ScreenPlaying {
		t.Fatalf("Screen() = %v, expected playing", g.Screen())
	}
	after := g.Snapshot()
	if before.Head != after.Head || before.Score != after.Score || before.Combo != after.Combo ||
		before.SnakeLen != after.SnakeLen || before.GameTime != after.GameTime {
		t.Errorf("pause changed the game:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestBlurPauses(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Blur()
	if g.Screen() != ScreenStart {
		t.Fatal("blur outside play should do nothing")
	}
	press(g, "enter")
	g.Blur()
	if g.Screen() != ScreenPaused {
		t.Errorf("Screen() = %v, expected paused", g.Screen())
	}
}

func TestWrapModeSurvivesEdge(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")
	step(g, clock, 25)

	snap := g.Snapshot()
	if snap.Screen != ScreenPlaying || !snap.Alive {
		t.Fatalf("wrap mode died: %+v", snap)
	}
	if snap.Head != core.V(15, 10) {
		t.Errorf("head = %v, expected (15,10)", snap.Head)
	}
}

func TestWallModeEndsGame(t *testing.T) {
	g, clock := newTestGame(t, wallMode)
	press(g, "enter")

	for i := 0; i < 15 && g.Screen() == ScreenPlaying; i++ {
		step(g, clock, 1)
	}
	snap := g.Snapshot()
	if snap.Screen != ScreenGameOver || snap.Alive {
		t.Fatalf("expected game over after running into the wall, got %+v", snap)
	}
	if g.w.particles.Count() == 0 {
		t.Error("death should burst particles")
	}
}

func TestShieldAbsorbsWall(t *testing.T) {
	g, clock := newTestGame(t, wallMode)
	press(g, "enter")
	g.w.powerUps.Activate(PowerUpShield)

	step(g, clock, 10)
	snap := g.Snapshot()
	if snap.Screen != ScreenPlaying || !snap.Alive {
		t.Fatalf("shield should absorb the wall: %+v", snap)
	}
	if snap.Head != core.V(0, 10) {
		t.Errorf("head = %v, expected wrapped to (0,10)", snap.Head)
	}
	if snap.Active.Has(PowerUpShield) {
		t.Error("shield should be used up")
	}

	step(g, clock, 20)
	if g.Screen() != ScreenGameOver {
		t.Error("second wall hit without a shield should end the game")
	}
}

func TestGhostPassesWall(t *testing.T) {
	g, clock := newTestGame(t, wallMode)
	press(g, "enter")
	g.w.powerUps.Activate(PowerUpGhost)

	step(g, clock, 12)
	snap := g.Snapshot()
	if snap.Screen != ScreenPlaying || snap.Head != core.V(2, 10) {
		t.Errorf("ghost should wrap through the wall: %+v", snap)
	}
}

func TestSlowDownStretchesTick(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")
	g.w.powerUps.Activate(PowerUpSlowDown)

	step(g, clock, 1)
	if g.TickRate() != 225*time.Millisecond {
		t.Errorf("TickRate() = %v, expected 225ms", g.TickRate())
	}
}

func TestEatingFood(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")

	g.w.food.Item = &FoodItem{Pos: core.V(11, 10), Type: FoodNormal, Points: 10}
	step(g, clock, 1)
	g.w.food.Item = &FoodItem{Pos: core.V(12, 10), Type: FoodNormal, Points: 10}
	step(g, clock, 1)

	snap := g.Snapshot()
	if snap.Score != 25 || snap.Combo != 2 || snap.MaxCombo != 2 {
		t.Errorf("score %d combo %d max %d, expected 25, 2, 2", snap.Score, snap.Combo, snap.MaxCombo)
	}
	if snap.GrowthPending+snap.SnakeLen != 5 {
		t.Errorf("snake should be growing to 5, len %d pending %d", snap.SnakeLen, snap.GrowthPending)
	}
	if !snap.HasFood || snap.FoodPos == core.V(12, 10) {
		t.Error("food should respawn elsewhere")
	}
	if len(g.w.popups.Items()) == 0 {
		t.Error("eating should show a points popup")
	}
}

func TestRunnerIsLastFood(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")

	g.w.score.FoodEaten = 8
	g.w.food.Item = &FoodItem{Pos: core.V(11, 10), Points: 10}
	step(g, clock, 1)
	if !g.Snapshot().FoodRunner {
		t.Error("the last food of a level should run")
	}
}

func TestLevelUpFlow(t *testing.T) {
	g, clock := newTestGame(t, nil)
	press(g, "enter")

	var completed []int
	engine.On(g.Bus(), TopicLevelComplete, func(e LevelComplete) { completed = append(completed, e.Level) })

	g.w.score.FoodEaten = 9
	g.w.food.Item = &FoodItem{Pos: core.V(11, 10), Points: 10}
	step(g, clock, 1)

	if g.Screen() != ScreenLevelTransition {
		t.Fatalf("Screen() = %v, expected level transition", g.Screen())
	}
	if len(completed) != 1 || completed[0] != 2 {
		t.Errorf("level:complete events = %v", completed)
	}

	step(g, clock, 20)
	snap := g.Snapshot()
	if snap.Screen != ScreenPlaying || snap.Level != 2 || snap.FoodEaten != 0 {
		t.Fatalf("after transition: %+v", snap)
	}
	if snap.TickRate != 135*time.Millisecond {
		t.Errorf("level 2 TickRate = %v, expected 135ms", snap.TickRate)
	}
	if !snap.HasFood {
		t.Error("new level should start with food")
	}
}

func TestGameOverSubmitsHighScore(t *testing.T) {
	g, clock := newTestGame(t, wallMode)
	press(g, "enter")
	g.w.food.Item = &FoodItem{Pos: core.V(11, 10), Points: 10}

	for i := 0; i < 15 && g.Screen() == ScreenPlaying; i++ {
		step(g, clock, 1)
	}
	if g.Screen() != ScreenGameOver {
		t.Fatalf("Screen() = %v, expected game over", g.Screen())
	}

	press(g, "h")
	if !g.TextEntry() {
		t.Fatal("h should open name entry for a high score")
	}
	for _, k := range []string{"n", "e", "o", "enter"} {
		press(g, k)
	}
	if g.TextEntry() {
		t.Error("enter should close name entry")
	}

	scores := g.highScores.Scores()
	if len(scores) != 1 || scores[0].Name != "NEO" || scores[0].Score < 10 {
		t.Fatalf("scores = %+v", scores)
	}

	press(g, "r")
	if g.Screen() != ScreenPlaying || g.Snapshot().Score != 0 {
		t.Error("r should start a fresh game")
	}
}

func TestSettingsChangeGrid(t *testing.T) {
	g, _ := newTestGame(t, nil)

	press(g, "s")
	if g.Screen() != ScreenSettings {
		t.Fatalf("Screen() = %v, expected settings", g.Screen())
	}
	press(g, "down")
	press(g, "down")
	press(g, "right")
	press(g, "enter")

	if g.Screen() != ScreenStart {
		t.Fatalf("Screen() = %v, expected start", g.Screen())
	}
	if g.Settings().GridSize != 25 {
		t.Fatalf("GridSize = %d, expected 25", g.Settings().GridSize)
	}
	press(g, "enter")
	if head := g.Snapshot().Head; head != core.V(12, 12) {
		t.Errorf("head = %v, expected centre of the 25 grid", head)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, clock := newTestGame(t, nil)
		press(g, "enter")
		for i := 0; i < 60; i++ {
			switch i {
			case 10:
				press(g, "down")
			case 20:
				press(g, "left")
			case 30:
				press(g, "up")
			}
			step(g, clock, 1)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
}

func TestViewRenders(t *testing.T) {
	g, _ := newTestGame(t, nil)
	dst := core.NewScreen(80, 30)

	g.View(dst)
	if !strings.Contains(dst.String(), "PRESS [S] FOR SETTINGS") {
		t.Error("start screen should show the settings hint")
	}

	press(g, "enter")
	g.View(dst)
	out := dst.String()
	if !strings.Contains(out, "SCORE: 0") || !strings.Contains(out, "LVL 1") {
		t.Errorf("playing view missing HUD:\n%s", out)
	}
	if !strings.Contains(out, glyphHead) {
		t.Error("playing view should draw the snake head")
	}

	small := core.NewScreen(30, 10)
	g.View(small)
	if !strings.Contains(small.String(), "TERMINAL TOO SMALL") {
		t.Error("small terminal should get a notice")
	}
}
