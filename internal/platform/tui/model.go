package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/serpent"
)

// Model is the Bubble Tea model hosting one game.
type Model struct {
	game     *serpent.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	quitting bool
}

// NewModel creates a model for game sized by cfg.
func NewModel(game *serpent.Game, cfg core.RuntimeConfig) Model {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   DefaultKeyMap(),
	}
}

// Init starts the game loop and the frame ticker.
func (m Model) Init() tea.Cmd {
	m.game.Start(time.Now())
	return frameCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		m.game.Blur()
		return m, nil

	case FrameMsg:
		if m.quitting {
			return m, nil
		}
		m.game.Frame(time.Time(msg))
		return m, frameCmd(m.config.FPS)
	}

	return m, nil
}

// handleKey processes keyboard input. Terminals report presses only, so
// each press is released straight away.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Quit) && !m.game.TextEntry():
		return m.quit()
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if k, ok := GameKey(msg); ok {
		m.game.KeyDown(k)
		m.game.KeyUp(k)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.game.Stop()
	return m, tea.Quit
}

// saveScreenshot writes the current frame as plain text under
// ~/.serpent/screenshots.
func (m *Model) saveScreenshot() {
	m.game.View(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".serpent", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("serpent_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.View(m.screen)
	return RenderScreen(m.screen)
}

// Run plays game in the current terminal until the user quits.
func Run(game *serpent.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
