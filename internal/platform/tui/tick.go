// Package tui provides the Bubble Tea front end of the brick breaker: the
// frame clock, key and mouse input, terminal rendering and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// holdTicks is how long a direction key counts as held after a press.
// Terminals report repeats but never releases; the window bridges the gap
// between the first press and the first auto-repeat.
func holdTicks(tickRate int) int {
	n := tickRate * 15 / 100
	if n < 1 {
		return 1
	}
	return n
}
