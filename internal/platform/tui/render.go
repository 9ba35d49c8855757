package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// palette maps game colours to the neon terminal colours.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorRed:           lipgloss.AdaptiveColor{Light: "160", Dark: "#FF3355"},
	core.ColorGreen:         lipgloss.AdaptiveColor{Light: "28", Dark: "#39FF14"},
	core.ColorYellow:        lipgloss.AdaptiveColor{Light: "136", Dark: "#FFE600"},
	core.ColorBlue:          lipgloss.AdaptiveColor{Light: "25", Dark: "#3D7BFF"},
	core.ColorMagenta:       lipgloss.AdaptiveColor{Light: "127", Dark: "#FF00FF"},
	core.ColorCyan:          lipgloss.AdaptiveColor{Light: "31", Dark: "#00FFFF"},
	core.ColorWhite:         lipgloss.Color("7"),
	core.ColorBrightRed:     lipgloss.Color("9"),
	core.ColorBrightGreen:   lipgloss.Color("10"),
	core.ColorBrightYellow:  lipgloss.Color("11"),
	core.ColorBrightBlue:    lipgloss.Color("12"),
	core.ColorBrightMagenta: lipgloss.Color("13"),
	core.ColorBrightCyan:    lipgloss.Color("14"),
	core.ColorBrightWhite:   lipgloss.Color("15"),
	core.ColorOrange:        lipgloss.AdaptiveColor{Light: "166", Dark: "#FF8C00"},
	core.ColorGray:          lipgloss.Color("240"),
}

var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, tc := range palette {
		s := lipgloss.NewStyle().Foreground(tc)
		if c.Bright() {
			s = s.Bold(true)
		}
		styles[c] = s
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells sharing a colour are styled together.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
