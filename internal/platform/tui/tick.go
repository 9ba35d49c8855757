// Package tui hosts Neon Serpent in a terminal through Bubble Tea.
// It turns tea messages into game frames and key events, colours the
// game's screen buffer with lipgloss and serves sessions over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the render rate used when none is configured.
const DefaultFPS = 60

// FrameMsg asks the model to advance the game to the carried time.
type FrameMsg time.Time

// frameCmd schedules the next frame at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
