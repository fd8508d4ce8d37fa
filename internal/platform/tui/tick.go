// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and the tick schedule.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the run that scheduled it; ticks from an older
// generation are dropped.
type TickMsg struct {
	Gen int
	At  time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick message after
// one frame at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
