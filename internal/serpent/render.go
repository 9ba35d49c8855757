package serpent

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// Board glyphs, two columns per cell.
const (
	glyphHead     = "██"
	glyphBody     = "▓▓"
	glyphObstacle = "▒▒"
	glyphGrid     = " ·"
)

// Renderer draws game state onto a core.Screen. The board is centred with
// one HUD row above and one combo row below.
type Renderer struct {
	cellW int
}

// NewRenderer returns a renderer using cellW columns per grid cell.
func NewRenderer(cellW int) *Renderer {
	return &Renderer{cellW: max(cellW, 1)}
}

// Board describes where the grid sits on the screen.
type Board struct {
	Rect  core.Rect // includes the border
	Grid  int
	CellW int
}

// cellX returns the screen column of a fractional grid x.
func (b Board) cellX(x float64) int {
	return b.Rect.X + 1 + int(math.Round(x*float64(b.CellW)))
}

// cellY returns the screen row of a fractional grid y.
func (b Board) cellY(y float64) int {
	return b.Rect.Y + 1 + int(math.Round(y))
}

func (b Board) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(b.Grid) && y < float64(b.Grid)
}

// RequiredSize returns the smallest screen that fits a grid.
func (r *Renderer) RequiredSize(grid int) (w, h int) {
	return core.CanvasSize(grid, r.cellW) + 2, grid + 4
}

// Layout centres the board for grid on dst. ok is false when dst is too
// small.
func (r *Renderer) Layout(dst *core.Screen, grid int) (Board, bool) {
	w, h := r.RequiredSize(grid)
	if core.FitScale(w, h, dst.Width(), dst.Height(), 1.0) < 1 {
		return Board{}, false
	}
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	return Board{Rect: core.NewRect(x, y+1, w, grid+2), Grid: grid, CellW: r.cellW}, true
}

// TooSmall tells the player how large the terminal must be.
func (r *Renderer) TooSmall(dst *core.Screen, grid int) {
	w, h := r.RequiredSize(grid)
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "TERMINAL TOO SMALL", core.ColorBrightRed)
	dst.DrawTextCentered(mid+1, fmt.Sprintf("need %dx%d, have %dx%d", w, h, dst.Width(), dst.Height()), core.ColorGray)
}

// World draws the board, entities, effects and HUD.
func (r *Renderer) World(dst *core.Screen, w *world, alpha float64) (Board, bool) {
	b, ok := r.Layout(dst, w.gridSize())
	if !ok {
		r.TooSmall(dst, w.gridSize())
		return b, false
	}

	r.background(dst, b)
	r.obstacles(dst, b, w)
	r.food(dst, b, w)
	r.powerUp(dst, b, w)
	r.snake(dst, b, w, alpha)
	r.particles(dst, b, w.particles)
	r.popups(dst, b, w.popups)
	r.hud(dst, b, w)
	return b, true
}

func (r *Renderer) background(dst *core.Screen, b Board) {
	dst.DrawBox(b.Rect, core.ColorCyan)
	for y := 0; y < b.Grid; y++ {
		for x := 0; x < b.Grid; x++ {
			r.put(dst, b, float64(x), float64(y), glyphGrid, core.ColorGray)
		}
	}
}

func (r *Renderer) obstacles(dst *core.Screen, b Board, w *world) {
	for _, c := range w.obstacles.AllCells() {
		r.put(dst, b, float64(c.X), float64(c.Y), glyphObstacle, core.ColorRed)
	}
}

func (r *Renderer) food(dst *core.Screen, b Board, w *world) {
	it := w.food.Item
	if it == nil {
		return
	}
	x := float64(it.Pos.X)
	if it.Runner {
		x += it.RunnerOffset
	}
	color := foodColor(it.Type)
	// Pulse between bright and plain on a one second cycle.
	if math.Sin(w.uptime.Seconds()*2*math.Pi+it.PulsePhase) < -0.6 {
		color = core.ColorWhite
	}
	r.put(dst, b, x, float64(it.Pos.Y), foodGlyph(it.Type), color)
}

func (r *Renderer) powerUp(dst *core.Screen, b Board, w *world) {
	it := w.powerUps.Entity.Item
	if it == nil {
		return
	}
	// Blink during the last three seconds on the field.
	if w.powerUps.Entity.Remaining() < 3*time.Second && int(w.uptime/(150*time.Millisecond))%2 == 0 {
		return
	}
	r.put(dst, b, float64(it.Pos.X), float64(it.Pos.Y), it.Type.Glyph(), it.Type.Color())
}

func (r *Renderer) snake(dst *core.Screen, b Board, w *world, alpha float64) {
	effects := w.powerUps.Active()
	head, body := core.ColorBrightGreen, core.ColorGreen
	switch {
	case !w.snake.Alive:
		head, body = core.ColorBrightRed, core.ColorRed
	case effects.Has(PowerUpGhost):
		head, body = core.ColorBrightMagenta, core.ColorMagenta
	case effects.Has(PowerUpShield):
		head = core.ColorBrightCyan
	}

	// Tail first so the head wins on shared cells.
	for i := len(w.snake.Segments) - 1; i >= 0; i-- {
		x, y := interpolate(w.snake.Segments[i], alpha)
		if i == 0 {
			r.put(dst, b, x, y, glyphHead, head)
			continue
		}
		r.put(dst, b, x, y, glyphBody, body)
	}
}

// interpolate blends a segment between its previous and current cell.
// Jumps longer than one cell (edge wraps) are not blended.
func interpolate(s Segment, alpha float64) (float64, float64) {
	if core.Abs(s.X-s.PrevX) > 1 || core.Abs(s.Y-s.PrevY) > 1 {
		return float64(s.X), float64(s.Y)
	}
	return core.Lerp(float64(s.PrevX), float64(s.X), alpha),
		core.Lerp(float64(s.PrevY), float64(s.Y), alpha)
}

func (r *Renderer) particles(dst *core.Screen, b Board, ps *ParticleSystem) {
	for _, p := range ps.Particles() {
		x, y := p.X-0.5, p.Y-0.5
		if !b.inside(x, y) {
			continue
		}
		glyph := '·'
		switch f := p.Fade(); {
		case f > 0.66:
			glyph = '*'
		case f > 0.33:
			glyph = '+'
		}
		dst.SetColored(b.cellX(x), b.cellY(y), glyph, p.Color)
	}
}

func (r *Renderer) popups(dst *core.Screen, b Board, pp *Popups) {
	for _, p := range pp.Items() {
		if !b.inside(p.X, p.Y) {
			continue
		}
		dst.DrawTextColored(b.cellX(p.X), b.cellY(p.Y), p.Text, p.Color)
	}
}

func (r *Renderer) hud(dst *core.Screen, b Board, w *world) {
	top := b.Rect.Y - 1
	left := b.Rect.X

	lvl := fmt.Sprintf("LVL %d ", w.levels.Current)
	dst.DrawTextColored(left, top, lvl, core.ColorBrightMagenta)
	progress := float64(w.score.FoodEaten) / float64(max(w.levels.FoodPerLevel(), 1))
	dst.DrawTextColored(left+len(lvl), top, bar(progress, 10), core.ColorMagenta)

	score := fmt.Sprintf("SCORE: %d", w.score.Score)
	dst.DrawTextColored(b.Rect.Right()-len(score), top, score, core.ColorBrightCyan)

	if label := w.powerUps.ActiveLabel(); label != "" {
		text := "[" + label + "]"
		x := b.Rect.X + (b.Rect.W-utf8.RuneCountInString(text))/2
		dst.DrawTextColored(x, top, text, core.ColorBrightBlue)
	}

	if w.score.Combo > 1 {
		color := core.ColorOrange
		if w.score.Combo >= 5 {
			color = core.ColorBrightYellow
		}
		text := fmt.Sprintf("COMBO x%d %s", w.score.Combo, bar(w.score.ComboProgress(), 12))
		x := b.Rect.X + (b.Rect.W-utf8.RuneCountInString(text))/2
		dst.DrawTextColored(x, b.Rect.Bottom(), text, color)
	}
}

// put draws a cell glyph at a fractional grid position, clipped to the
// board.
func (r *Renderer) put(dst *core.Screen, b Board, x, y float64, glyph string, c core.Color) {
	if !b.inside(x+0.5, y+0.5) {
		return
	}
	dst.DrawTextColored(b.cellX(x), b.cellY(y), glyph, c)
}

// bar renders a progress bar of width cells for p in [0, 1].
func bar(p float64, width int) string {
	filled := int(math.Round(core.ClampF(p, 0, 1) * float64(width)))
	return strings.Repeat("■", filled) + strings.Repeat("□", width-filled)
}

func foodGlyph(t FoodType) string {
	switch t {
	case FoodBonus:
		return "<>"
	case FoodGolden:
		return "$$"
	default:
		return "()"
	}
}

func foodColor(t FoodType) core.Color {
	switch t {
	case FoodBonus:
		return core.ColorOrange
	case FoodGolden:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightMagenta
	}
}

// panelLine is one row of a centred overlay panel.
type panelLine struct {
	Text  string
	Color core.Color
}

// drawPanel draws a bordered box in the middle of dst holding lines.
func drawPanel(dst *core.Screen, lines []panelLine) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l.Text))
	}
	w := width + 6
	h := len(lines) + 2
	rect := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, core.ColorBrightCyan)
	for i, l := range lines {
		dst.DrawTextCentered(rect.Y+1+i, l.Text, l.Color)
	}
}

// menuLine formats a selectable option.
func menuLine(text string, selected bool) panelLine {
	if selected {
		return panelLine{Text: "> " + text + " <", Color: core.ColorBrightYellow}
	}
	return panelLine{Text: text, Color: core.ColorWhite}
}
