package serpent

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/storage"
)

// ScreenID names a game screen.
type ScreenID int

const (
	ScreenStart ScreenID = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
	ScreenLevelTransition
	ScreenSettings
)

func (s ScreenID) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "gameover"
	case ScreenLevelTransition:
		return "level_transition"
	case ScreenSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// blink is true for the first half of every period.
func blink(t, period time.Duration) bool {
	return t%period < period/2
}

// --- Start ---

// StartScreen shows the title, the top scores and waits for Enter.
type StartScreen struct {
	time       time.Duration
	scores     func() []storage.HighScoreEntry
	onStart    func()
	onSettings func()
}

func (s *StartScreen) Enter(ScreenID)          { s.time = 0 }
func (s *StartScreen) Exit(ScreenID)           {}
func (s *StartScreen) Update(dt time.Duration) { s.time += dt }

func (s *StartScreen) Render(dst *core.Screen, _ float64) {
	y := max(dst.Height()/2-9, 0)
	dst.DrawTextCentered(y, "N E O N", core.ColorBrightCyan)
	dst.DrawTextCentered(y+1, "S E R P E N T", core.ColorBrightMagenta)
	dst.DrawTextCentered(y+3, "A CYBERPUNK SNAKE GAME", core.ColorBlue)

	if blink(s.time, 1200*time.Millisecond) {
		dst.DrawTextCentered(y+6, "PRESS ENTER TO START", core.ColorBrightGreen)
	}
	dst.DrawTextCentered(y+7, "PRESS [S] FOR SETTINGS", core.ColorGray)

	if scores := s.scores(); len(scores) > 0 {
		dst.DrawTextCentered(y+9, "- HIGH SCORES -", core.ColorBrightYellow)
		for i, e := range scores[:min(5, len(scores))] {
			// Entries fade in one after another.
			if s.time < time.Duration(i)*100*time.Millisecond {
				continue
			}
			dst.DrawTextCentered(y+10+i, fmt.Sprintf("%d. %-6s %6d LVL%d", i+1, e.Name, e.Score, e.Level), core.ColorWhite)
		}
	}

	dst.DrawTextCentered(dst.Height()-1, "ARROW KEYS / WASD TO MOVE | SPACE TO PAUSE | Q TO QUIT", core.ColorCyan)
}

func (s *StartScreen) HandleInput(key string) {
	switch key {
	case core.KeyEnter, core.KeySpace:
		s.onStart()
	case core.KeyS:
		s.onSettings()
	}
}

// --- Playing ---

// PlayingScreen runs one simulation tick per Update.
type PlayingScreen struct {
	w          *world
	r          *Renderer
	onPause    func()
	onLevelUp  func()
	onGameOver func()
}

func (s *PlayingScreen) Enter(ScreenID) {}
func (s *PlayingScreen) Exit(ScreenID)  {}

// Update advances the game by one tick: input, movement, pickups,
// collision, then the timed systems. A level-up or death ends the tick
// early.
func (s *PlayingScreen) Update(dt time.Duration) {
	w := s.w
	grid := w.gridSize()

	dir := w.input.ConsumeDirection()
	move := w.snake.Move(dir, grid, w.settings.BoundaryMode)
	effects := w.powerUps.Active()

	if move.HitWall && (effects.Has(PowerUpGhost) || effects.Has(PowerUpShield)) {
		w.snake.WrapHead(grid)
	}
	if effects.Has(PowerUpMagnet) && w.snake.Head().InGrid(grid) {
		w.food.PullToward(w.snake.Head())
	}
	w.food.AdvanceRunner(dt, grid)

	res := w.collision.Check(w.snake, w.food, w.obstacles, w.powerUps.Entity, move.HitWall, effects)
	if res.Absorbed {
		w.powerUps.ConsumeShield()
		w.particles.Burst(w.snake.Head(), core.ColorBrightCyan, 20, 8)
	}

	if res.AteFood {
		item := *w.food.Item
		points := w.score.OnFoodEaten(item.Points, effects)
		w.snake.Grow(1)
		w.particles.Burst(item.Pos, foodColor(item.Type), 15, 6)

		color := core.ColorBrightGreen
		if w.score.Combo > 1 {
			color = core.ColorBrightYellow
		}
		w.popups.Add(item.Pos, fmt.Sprintf("+%d", points), color)

		w.food.Clear()
		w.spawnFood(w.score.FoodEaten == w.levels.FoodPerLevel()-1)

		if w.levels.CheckLevelUp(w.score.FoodEaten) {
			s.onLevelUp()
			return
		}
		w.bus.Emit(FoodEaten{Type: item.Type, Points: points, Pos: item.Pos})
	}

	if res.AtePowerUp {
		w.powerUps.Activate(res.PowerUpType)
		w.particles.Burst(w.snake.Head(), res.PowerUpType.Color(), 20, 8)
	}

	if res.Fatal() {
		w.snake.Alive = false
		w.particles.Burst(w.snake.Head(), core.ColorBrightRed, 30, 10)
		s.onGameOver()
		return
	}

	w.score.Update(dt)
	w.powerUps.Update(dt, grid, w.occupied(), w.levels.Config().PowerUpChance)
	w.particles.Update(dt)
	w.popups.Update(dt)
}

func (s *PlayingScreen) Render(dst *core.Screen, alpha float64) {
	s.r.World(dst, s.w, alpha)
}

func (s *PlayingScreen) HandleInput(key string) {
	if key == core.KeySpace || key == core.KeyEscape {
		s.onPause()
	}
}

// --- Paused ---

var pauseOptions = []string{"RESUME", "RESTART", "MAIN MENU"}

// PausedScreen freezes the game behind a menu.
type PausedScreen struct {
	w         *world
	r         *Renderer
	time      time.Duration
	score     int
	level     int
	selected  int
	onResume  func()
	onRestart func()
	onMenu    func()
}

// SetStats sets the numbers shown in the menu.
func (s *PausedScreen) SetStats(score, level int) {
	s.score = score
	s.level = level
}

func (s *PausedScreen) Enter(ScreenID) {
	s.time = 0
	s.selected = 0
}

func (s *PausedScreen) Exit(ScreenID)           {}
func (s *PausedScreen) Update(dt time.Duration) { s.time += dt }

func (s *PausedScreen) Render(dst *core.Screen, _ float64) {
	s.r.World(dst, s.w, 1)
	lines := []panelLine{
		{Text: "PAUSED", Color: core.ColorBrightCyan},
		{},
		{Text: fmt.Sprintf("SCORE: %d", s.score), Color: core.ColorWhite},
		{Text: fmt.Sprintf("LEVEL: %d", s.level), Color: core.ColorWhite},
		{},
	}
	for i, opt := range pauseOptions {
		lines = append(lines, menuLine(opt, i == s.selected))
	}
	lines = append(lines, panelLine{}, panelLine{Text: "PRESS SPACE TO RESUME", Color: core.ColorGray})
	drawPanel(dst, lines)
}

func (s *PausedScreen) HandleInput(key string) {
	n := len(pauseOptions)
	switch {
	case key == core.KeySpace || key == core.KeyEscape:
		s.onResume()
	case core.IsUpKey(key):
		s.selected = (s.selected - 1 + n) % n
	case core.IsDownKey(key):
		s.selected = (s.selected + 1) % n
	case key == core.KeyEnter:
		switch s.selected {
		case 0:
			s.onResume()
		case 1:
			s.onRestart()
		default:
			s.onMenu()
		}
	}
}

// --- Game over ---

var gameOverOptions = []string{"RETRY", "MAIN MENU"}

// GameOverStats are the numbers of a finished run.
type GameOverStats struct {
	Score       int
	Level       int
	FoodEaten   int
	MaxCombo    int
	IsHighScore bool
}

// GameOverScreen shows the final score and takes a name for the table.
type GameOverScreen struct {
	time         time.Duration
	stats        GameOverStats
	displayScore int
	selected     int
	submitted    bool
	rank         int

	editing bool
	name    []rune
	maxName int

	countUpDivisor time.Duration
	onRestart      func()
	onMenu         func()
	onSubmit       func(name string) int
}

// SetStats sets the run to show.
func (s *GameOverScreen) SetStats(st GameOverStats) {
	s.stats = st
}

// Editing reports whether the name field has focus.
func (s *GameOverScreen) Editing() bool {
	return s.editing
}

func (s *GameOverScreen) Enter(ScreenID) {
	s.time = 0
	s.selected = 0
	s.submitted = false
	s.rank = 0
	s.displayScore = 0
	s.editing = false
	s.name = s.name[:0]
}

func (s *GameOverScreen) Exit(ScreenID) {
	s.editing = false
}

// Update counts the shown score up to the final score.
func (s *GameOverScreen) Update(dt time.Duration) {
	s.time += dt
	if s.displayScore < s.stats.Score {
		step := int(math.Floor(float64(s.stats.Score) * float64(dt) / float64(s.countUpDivisor)))
		s.displayScore = min(s.displayScore+max(1, step), s.stats.Score)
	}
}

func (s *GameOverScreen) Render(dst *core.Screen, _ float64) {
	lines := []panelLine{
		{Text: "GAME OVER", Color: core.ColorBrightRed},
		{},
		{Text: fmt.Sprintf("%d", s.displayScore), Color: core.ColorBrightYellow},
		{},
	}

	switch {
	case s.editing:
		field := string(s.name) + strings.Repeat("_", s.maxName-len(s.name))
		lines = append(lines,
			panelLine{Text: "ENTER YOUR NAME: " + field, Color: core.ColorBrightGreen},
			panelLine{Text: "ENTER TO SAVE, ESC TO CANCEL", Color: core.ColorGray},
		)
	case s.stats.IsHighScore && !s.submitted:
		hs := panelLine{}
		if blink(s.time, time.Second) {
			hs = panelLine{Text: "NEW HIGH SCORE!", Color: core.ColorBrightYellow}
		}
		lines = append(lines, hs, panelLine{Text: "PRESS [H] TO SAVE SCORE", Color: core.ColorGreen})
	case s.submitted && s.rank > 0:
		lines = append(lines, panelLine{Text: fmt.Sprintf("SAVED AT RANK #%d", s.rank), Color: core.ColorGreen}, panelLine{})
	default:
		lines = append(lines, panelLine{}, panelLine{})
	}

	lines = append(lines,
		panelLine{},
		panelLine{Text: fmt.Sprintf("LEVEL REACHED: %d", s.stats.Level), Color: core.ColorWhite},
		panelLine{Text: fmt.Sprintf("FOOD CONSUMED: %d", s.stats.FoodEaten), Color: core.ColorWhite},
		panelLine{Text: fmt.Sprintf("MAX COMBO: x%d", s.stats.MaxCombo), Color: core.ColorWhite},
		panelLine{},
	)
	for i, opt := range gameOverOptions {
		lines = append(lines, menuLine(opt, i == s.selected))
	}
	drawPanel(dst, lines)

	if blink(s.time, 1500*time.Millisecond) {
		dst.DrawTextCentered(dst.Height()-1, "PRESS ENTER TO PLAY AGAIN", core.ColorGreen)
	}
}

func (s *GameOverScreen) HandleInput(key string) {
	if s.editing {
		s.handleNameKey(key)
		return
	}
	n := len(gameOverOptions)
	switch {
	case core.IsUpKey(key):
		s.selected = (s.selected - 1 + n) % n
	case core.IsDownKey(key):
		s.selected = (s.selected + 1) % n
	case key == core.KeyEnter:
		if s.selected == 0 {
			s.onRestart()
		} else {
			s.onMenu()
		}
	case key == core.KeyR:
		s.onRestart()
	case key == core.KeyH && s.stats.IsHighScore && !s.submitted:
		s.editing = true
		s.name = s.name[:0]
	}
}

func (s *GameOverScreen) handleNameKey(key string) {
	switch key {
	case core.KeyEscape:
		s.editing = false
	case core.KeyBackspace:
		if len(s.name) > 0 {
			s.name = s.name[:len(s.name)-1]
		}
	case core.KeyEnter:
		name := string(s.name)
		if name == "" {
			name = "AAA"
		}
		s.editing = false
		s.submitted = true
		s.rank = s.onSubmit(name)
	default:
		if r, ok := core.TextRune(key); ok && len(s.name) < s.maxName {
			s.name = append(s.name, []rune(strings.ToUpper(string(r)))...)
		}
	}
}

// --- Level transition ---

// LevelTransitionScreen announces the next level with a countdown.
type LevelTransitionScreen struct {
	w          *world
	time       time.Duration
	duration   time.Duration
	level      int
	done       bool
	onComplete func()
}

// SetLevel sets the level being announced.
func (s *LevelTransitionScreen) SetLevel(level int) {
	s.level = level
}

func (s *LevelTransitionScreen) Enter(ScreenID) {
	s.time = 0
	s.done = false
}

func (s *LevelTransitionScreen) Exit(ScreenID) {}

// Update runs the leftover particles and hands over once the
// announcement is over.
func (s *LevelTransitionScreen) Update(dt time.Duration) {
	s.time += dt
	s.w.particles.Update(dt)
	if s.time >= s.duration && !s.done {
		s.done = true
		s.onComplete()
	}
}

// progress is the elapsed share of the announcement in [0, 1].
func (s *LevelTransitionScreen) progress() float64 {
	if s.duration <= 0 {
		return 1
	}
	return core.ClampF(float64(s.time)/float64(s.duration), 0, 1)
}

// Countdown returns the countdown text, empty during the first half.
func (s *LevelTransitionScreen) Countdown() string {
	p := s.progress()
	if p <= 0.5 {
		return ""
	}
	switch cp := (p - 0.5) / 0.5; {
	case cp < 0.33:
		return "3"
	case cp < 0.66:
		return "2"
	case cp < 0.9:
		return "1"
	default:
		return "GO!"
	}
}

func (s *LevelTransitionScreen) Render(dst *core.Screen, _ float64) {
	mid := dst.Height() / 2
	p := s.progress()

	title := core.ColorCyan
	if p > 0.1 {
		title = core.ColorBrightCyan
	}
	dst.DrawTextCentered(mid-3, fmt.Sprintf("L E V E L   %d", s.level), title)
	if p > 0.3 && p < 0.8 {
		dst.DrawTextCentered(mid-1, "SPEED INCREASED", core.ColorBrightMagenta)
	}
	if cd := s.Countdown(); cd != "" {
		color := core.ColorBrightYellow
		if cd == "GO!" {
			color = core.ColorBrightGreen
		}
		dst.DrawTextCentered(mid+2, cd, color)
	}
}

func (s *LevelTransitionScreen) HandleInput(string) {}

// --- Settings ---

const settingsRows = 4

// SettingsScreen edits difficulty, boundary mode and grid size.
type SettingsScreen struct {
	cfg      config.GameConfig
	current  func() config.Settings
	draft    config.Settings
	selected int
	onSave   func(config.Settings)
	onBack   func()
}

func (s *SettingsScreen) Enter(ScreenID) {
	s.draft = s.current()
	s.selected = 0
}

func (s *SettingsScreen) Exit(ScreenID)           {}
func (s *SettingsScreen) Update(dt time.Duration) {}

func (s *SettingsScreen) Render(dst *core.Screen, _ float64) {
	rows := []string{
		fmt.Sprintf("DIFFICULTY   < %s >", strings.ToUpper(string(s.draft.Difficulty))),
		fmt.Sprintf("BOUNDARY     < %s >", strings.ToUpper(string(s.draft.BoundaryMode))),
		fmt.Sprintf("GRID SIZE    < %dx%d >", s.draft.GridSize, s.draft.GridSize),
		"SAVE & BACK",
	}
	lines := []panelLine{{Text: "SETTINGS", Color: core.ColorBrightCyan}, {}}
	for i, row := range rows {
		lines = append(lines, menuLine(row, i == s.selected))
	}
	lines = append(lines, panelLine{}, panelLine{Text: "UP/DOWN SELECT, LEFT/RIGHT CHANGE, ESC BACK", Color: core.ColorGray})
	drawPanel(dst, lines)
}

func (s *SettingsScreen) HandleInput(key string) {
	switch {
	case core.IsUpKey(key):
		s.selected = (s.selected - 1 + settingsRows) % settingsRows
	case core.IsDownKey(key):
		s.selected = (s.selected + 1) % settingsRows
	case core.IsLeftKey(key):
		s.change(-1)
	case core.IsRightKey(key):
		s.change(1)
	case key == core.KeyEnter:
		s.onSave(s.draft)
		s.onBack()
	case key == core.KeyEscape:
		s.onBack()
	}
}

func (s *SettingsScreen) change(offset int) {
	switch s.selected {
	case 0:
		s.draft.Difficulty = config.Cycle(config.Difficulties, s.draft.Difficulty, offset)
	case 1:
		s.draft.BoundaryMode = config.Cycle(config.BoundaryModes, s.draft.BoundaryMode, offset)
	case 2:
		s.draft.GridSize = config.Cycle(s.cfg.Grid.Sizes, s.draft.GridSize, offset)
	}
}
