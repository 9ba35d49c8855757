package serpent

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/engine"
	"github.com/vovakirdan/neon-serpent/internal/storage"
)

// SettingsStore loads and saves user settings.
type SettingsStore interface {
	Get() config.Settings
	Save(s config.Settings) config.Settings
}

// HighScoreStore keeps the ranked score table.
type HighScoreStore interface {
	Scores() []storage.HighScoreEntry
	IsHighScore(score int) bool
	Add(name string, score, level int) (storage.HighScoreEntry, int)
}

// Options configures a Game. Zero values fall back to in-memory stores,
// the embedded config, the system clock and a time-based seed.
type Options struct {
	Config     config.GameConfig
	Settings   SettingsStore
	HighScores HighScoreStore
	Clock      engine.Clock
	Seed       int64
	Logger     *log.Logger
}

// world is the state shared by the screens. Only the Game mutates it
// outside a screen callback.
type world struct {
	cfg      config.GameConfig
	settings config.Settings
	bus      *engine.Bus
	input    *engine.InputManager
	clock    engine.Clock

	snake     *Snake
	food      *Food
	obstacles *ObstacleManager
	collision CollisionSystem
	score     *ScoreSystem
	levels    *LevelSystem
	powerUps  *PowerUpSystem
	particles *ParticleSystem
	popups    *Popups

	maxCombo int
	gameTime time.Duration // time spent in Playing this run
	uptime   time.Duration // drives animations
}

func (w *world) gridSize() int {
	return w.settings.GridSize
}

func (w *world) occupied() []core.Vec2 {
	return w.collision.OccupiedCells(w.snake, w.obstacles, w.food, w.powerUps.Entity)
}

func (w *world) spawnFood(runner bool) bool {
	types := ParseFoodTypes(w.levels.Config().FoodTypes)
	return w.food.Spawn(w.gridSize(), w.occupied(), types, runner)
}

// Game wires the loop, the screens and the game world together. It is
// driven by the host: Frame once per rendered frame, KeyDown/KeyUp for
// input and View to draw. A Game is not safe for concurrent use.
type Game struct {
	w        *world
	loop     *engine.Loop
	fsm      *engine.StateMachine[ScreenID]
	renderer *Renderer
	alpha    float64

	start      *StartScreen
	playing    *PlayingScreen
	paused     *PausedScreen
	gameOver   *GameOverScreen
	transition *LevelTransitionScreen
	settings   *SettingsScreen

	settingsStore SettingsStore
	highScores    HighScoreStore
	logger        *log.Logger
}

// New builds a game sitting on the start screen.
func New(opts Options) *Game {
	cfg := opts.Config
	if len(cfg.Levels) == 0 {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = engine.SystemClock{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	settingsStore := opts.Settings
	if settingsStore == nil {
		settingsStore = storage.NewSettingsManager(storage.NewMemoryKV(), cfg, logger)
	}
	highScores := opts.HighScores
	if highScores == nil {
		highScores = storage.NewHighScoreManager(storage.NewMemoryKV(), cfg.HighScores.MaxEntries, logger)
	}

	rng := rand.New(rand.NewSource(seed))
	bus := engine.NewBus()
	w := &world{
		cfg:       cfg,
		settings:  settingsStore.Get().Sanitize(cfg),
		bus:       bus,
		input:     engine.NewInputManager(),
		clock:     clock,
		snake:     NewSnake(cfg.Snake.InitialLength),
		food:      NewFood(cfg.Food, rng),
		obstacles: NewObstacleManager(),
		score:     NewScoreSystem(cfg.Scoring, bus),
		levels:    NewLevelSystem(cfg, bus),
		powerUps:  NewPowerUpSystem(cfg, bus, rng, clock),
		particles: NewParticleSystem(cfg.Particles, rng),
		popups:    NewPopups(time.Duration(cfg.Particles.PopupMS) * time.Millisecond),
	}

	g := &Game{
		w:             w,
		renderer:      NewRenderer(cfg.Grid.CellWidth),
		settingsStore: settingsStore,
		highScores:    highScores,
		logger:        logger,
	}
	g.loop = engine.NewLoop(w.levels.TickRate(w.settings.Difficulty), g.update, g.render)
	g.buildScreens()
	g.subscribe()
	g.resetGameState()
	g.fsm.TransitionTo(ScreenStart)
	return g
}

func (g *Game) buildScreens() {
	w := g.w
	g.start = &StartScreen{
		scores:     g.highScores.Scores,
		onStart:    g.startGame,
		onSettings: func() { g.fsm.TransitionTo(ScreenSettings) },
	}
	g.playing = &PlayingScreen{
		w:          w,
		r:          g.renderer,
		onPause:    g.pause,
		onLevelUp:  g.levelUp,
		onGameOver: g.endGame,
	}
	g.paused = &PausedScreen{
		w:         w,
		r:         g.renderer,
		onResume:  func() { g.fsm.TransitionTo(ScreenPlaying) },
		onRestart: g.startGame,
		onMenu:    func() { g.fsm.TransitionTo(ScreenStart) },
	}
	g.gameOver = &GameOverScreen{
		maxName:        w.cfg.HighScores.MaxNameLength,
		countUpDivisor: time.Duration(max(w.cfg.Scoring.CountUpDivisorMS, 1)) * time.Millisecond,
		onRestart:      g.startGame,
		onMenu:         func() { g.fsm.TransitionTo(ScreenStart) },
		onSubmit:       g.submitScore,
	}
	g.transition = &LevelTransitionScreen{
		w:          w,
		duration:   w.cfg.Timing.LevelTransition(),
		onComplete: g.completeLevelTransition,
	}
	g.settings = &SettingsScreen{
		cfg:     w.cfg,
		current: func() config.Settings { return g.w.settings },
		onSave:  g.applySettings,
		onBack:  func() { g.fsm.TransitionTo(ScreenStart) },
	}

	g.fsm = engine.NewStateMachine(ScreenStart)
	g.fsm.Register(ScreenStart, g.start)
	g.fsm.Register(ScreenPlaying, g.playing)
	g.fsm.Register(ScreenPaused, g.paused)
	g.fsm.Register(ScreenGameOver, g.gameOver)
	g.fsm.Register(ScreenLevelTransition, g.transition)
	g.fsm.Register(ScreenSettings, g.settings)
}

func (g *Game) subscribe() {
	engine.On(g.w.bus, TopicComboIncrement, func(e ComboIncrement) {
		g.w.maxCombo = max(g.w.maxCombo, e.Combo)
	})
	engine.On(g.w.bus, TopicPowerUpCollected, func(e PowerUpCollected) {
		g.logger.Debug("power-up collected", "type", e.Type)
	})
	engine.On(g.w.bus, TopicPowerUpExpired, func(e PowerUpExpired) {
		g.logger.Debug("power-up expired", "type", e.Type)
	})
	engine.On(g.w.bus, TopicLevelComplete, func(e LevelComplete) {
		g.logger.Info("level complete", "level", e.Level, "score", g.w.score.Score)
	})
}

// Start begins accepting frames at now.
func (g *Game) Start(now time.Time) {
	g.loop.Start(now)
}

// Stop halts the loop.
func (g *Game) Stop() {
	g.loop.Stop()
}

// Running reports whether the loop accepts frames.
func (g *Game) Running() bool {
	return g.loop.Running()
}

// Frame advances the simulation to now and returns the ticks run.
func (g *Game) Frame(now time.Time) int {
	return g.loop.Frame(now)
}

// KeyDown delivers a key press. Direction keys reach the turn buffer only
// while playing; every key reaches the current screen.
func (g *Game) KeyDown(key string) {
	key = core.NormalizeKey(key)
	if g.fsm.Current() == ScreenPlaying {
		g.w.input.KeyDown(key)
	}
	g.fsm.HandleInput(key)
}

// KeyUp delivers a key release.
func (g *Game) KeyUp(key string) {
	g.w.input.KeyUp(key)
}

// Blur pauses a running game when the host loses focus.
func (g *Game) Blur() {
	if g.fsm.Current() == ScreenPlaying {
		g.pause()
	}
}

// View draws the current screen into dst.
func (g *Game) View(dst *core.Screen) {
	dst.Clear()
	g.fsm.Render(dst, g.alpha)
}

// Screen returns the current screen.
func (g *Game) Screen() ScreenID {
	return g.fsm.Current()
}

// TextEntry reports whether a text field has focus, so hosts can stop
// treating letter keys as commands.
func (g *Game) TextEntry() bool {
	return g.fsm.Current() == ScreenGameOver && g.gameOver.Editing()
}

// TickRate returns the current simulation step.
func (g *Game) TickRate() time.Duration {
	return g.loop.TickRate()
}

// Settings returns the active settings.
func (g *Game) Settings() config.Settings {
	return g.w.settings
}

// Bus returns the event bus for outside subscribers.
func (g *Game) Bus() *engine.Bus {
	return g.w.bus
}

// InputPending returns the queued turns, oldest first.
func (g *Game) InputPending() []core.Direction {
	return g.w.input.Pending()
}

func (g *Game) update(dt time.Duration) {
	g.w.uptime += dt
	if g.fsm.Current() == ScreenPlaying {
		g.w.gameTime += dt
		g.loop.SetTickRate(g.currentTickRate())
	}
	g.fsm.Update(dt)
}

func (g *Game) render(alpha float64) {
	g.alpha = alpha
}

// currentTickRate is the level tick rate, stretched while slowed.
func (g *Game) currentTickRate() time.Duration {
	rate := g.w.levels.TickRate(g.w.settings.Difficulty)
	if g.w.powerUps.IsSlowed() {
		ms := math.Floor(float64(rate.Milliseconds()) * g.w.cfg.Timing.SlowdownFactor)
		rate = time.Duration(ms) * time.Millisecond
	}
	return rate
}

func (g *Game) resetGameState() {
	w := g.w
	grid := w.gridSize()

	w.snake.Init(grid)
	w.input.ResetDirection(core.DirRight)
	w.score.Reset()
	w.levels.Reset()
	w.powerUps.Reset()
	w.particles.Clear()
	w.popups.Clear()
	w.food.Clear()
	w.maxCombo = 0
	w.gameTime = 0

	w.obstacles.SetObstacles(w.levels.Config().Obstacles, grid)
	w.spawnFood(false)
	g.loop.SetTickRate(w.levels.TickRate(w.settings.Difficulty))
}

func (g *Game) startGame() {
	g.resetGameState()
	g.logger.Debug("game started",
		"difficulty", g.w.settings.Difficulty,
		"grid", g.w.settings.GridSize,
		"boundary", g.w.settings.BoundaryMode)
	g.fsm.TransitionTo(ScreenPlaying)
}

func (g *Game) pause() {
	g.paused.SetStats(g.w.score.Score, g.w.levels.Current)
	g.fsm.TransitionTo(ScreenPaused)
}

func (g *Game) endGame() {
	w := g.w
	stats := GameOverStats{
		Score:       w.score.Score,
		Level:       w.levels.Current,
		FoodEaten:   w.score.TotalFoodEaten,
		MaxCombo:    w.maxCombo,
		IsHighScore: g.highScores.IsHighScore(w.score.Score),
	}
	g.gameOver.SetStats(stats)
	g.logger.Info("game over",
		"score", stats.Score,
		"level", stats.Level,
		"food", stats.FoodEaten,
		"max_combo", stats.MaxCombo,
		"played", w.gameTime.Round(time.Second))
	g.fsm.TransitionTo(ScreenGameOver)
}

func (g *Game) levelUp() {
	g.w.levels.LevelUp()
	g.transition.SetLevel(g.w.levels.Current)
	g.fsm.TransitionTo(ScreenLevelTransition)
}

func (g *Game) completeLevelTransition() {
	w := g.w
	w.obstacles.SetObstacles(w.levels.Config().Obstacles, w.gridSize())
	w.score.ResetLevelFood()
	g.loop.SetTickRate(w.levels.TickRate(w.settings.Difficulty))
	w.food.Clear()
	w.spawnFood(false)
	g.fsm.TransitionTo(ScreenPlaying)
}

func (g *Game) submitScore(name string) int {
	entry, rank := g.highScores.Add(name, g.w.score.Score, g.w.levels.Current)
	g.logger.Info("high score saved", "name", entry.Name, "score", entry.Score, "rank", rank)
	return rank
}

// applySettings stores new settings. A new grid size rebuilds the board.
func (g *Game) applySettings(s config.Settings) {
	oldGrid := g.w.settings.GridSize
	g.w.settings = g.settingsStore.Save(s)
	if g.w.settings.GridSize != oldGrid {
		g.resetGameState()
	}
	g.logger.Debug("settings applied", "settings", g.w.settings)
}
