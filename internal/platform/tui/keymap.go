package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-serpent/internal/core"
)

// KeyMap holds the bindings the host handles itself. Every other key is
// forwarded to the game.
type KeyMap struct {
	ForceQuit  key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns the default host bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Screenshot}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.ForceQuit, k.Screenshot}}
}

// GameKey translates a key message to the key name the game understands.
// It returns false for keys the game has no use for.
func GameKey(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return core.KeySpace, true
	case tea.KeyUp:
		return core.KeyUp, true
	case tea.KeyDown:
		return core.KeyDown, true
	case tea.KeyLeft:
		return core.KeyLeft, true
	case tea.KeyRight:
		return core.KeyRight, true
	case tea.KeyEnter:
		return core.KeyEnter, true
	case tea.KeyEsc:
		return core.KeyEscape, true
	case tea.KeyBackspace:
		return core.KeyBackspace, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Alt {
			return "", false
		}
		return core.NormalizeKey(string(msg.Runes)), true
	}
	return "", false
}
