package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-whale/internal/core"
)

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionJump, core.ActionStart}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionJump}},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, []core.Action{core.ActionJump}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionStart}},
		{"r", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, []core.Action{core.ActionRestart}},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, []core.Action{core.ActionQuit}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := km.Actions(tc.msg)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("Actions(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestMouseActions(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.MouseMsg
		expected int
	}{
		{"left press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, 2},
		{"left release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, 0},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, 0},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MouseActions(tc.msg); len(got) != tc.expected {
				t.Errorf("MouseActions() = %v, expected %d actions", got, tc.expected)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	for _, b := range km.ShortHelp() {
		if b.Help().Key == "" {
			t.Error("binding without help text")
		}
	}
	if len(km.FullHelp()) != 2 {
		t.Errorf("FullHelp() has %d columns, expected 2", len(km.FullHelp()))
	}
}
