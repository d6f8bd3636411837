// Package tui provides the Bubble Tea front end for Province.
// It handles the terminal UI loop, input mapping and board rendering; every
// rule lives in the session it drives.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TimerInterval is the period of the game clock.
const TimerInterval = time.Second

// TickMsg advances the game clock by one second.
type TickMsg time.Time

// EndStepMsg asks for the next end sequence step.
type EndStepMsg struct{}

// tickCmd returns a Bubble Tea command that sends the next clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(TimerInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// endStepCmd schedules the next end sequence step after delay.
func endStepCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return EndStepMsg{}
	})
}
