package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-whale/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Jump    key.Binding
	Start   key.Binding
	Restart key.Binding
	Runs    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Start, k.Restart, k.Runs, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Start, k.Restart},
		{k.Runs, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up", "swim up"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Runs: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Actions translates a key message to game actions.
// A key may trigger several actions; the game decides which one applies.
func (k KeyMap) Actions(msg tea.KeyMsg) []core.Action {
	var actions []core.Action
	if key.Matches(msg, k.Jump) {
		actions = append(actions, core.ActionJump)
	}
	if key.Matches(msg, k.Start) {
		actions = append(actions, core.ActionStart)
	}
	if key.Matches(msg, k.Restart) {
		actions = append(actions, core.ActionRestart)
	}
	if key.Matches(msg, k.Quit) {
		actions = append(actions, core.ActionQuit)
	}
	return actions
}

// MouseActions translates a mouse message to game actions.
// A left button press counts as a tap: it jumps and starts a fresh run.
func MouseActions(msg tea.MouseMsg) []core.Action {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	return []core.Action{core.ActionJump, core.ActionStart}
}
