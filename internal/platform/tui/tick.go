// Package tui provides the Bubble Tea integration for the parlor platform.
// It handles the terminal UI loop, command input, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per second to advance session countdowns.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that delivers one tick per second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
