// Package tui provides the Bubble Tea integration for the reflex grid.
// It handles the terminal UI loop, input mapping, and the round's timers.
//
// Each periodic process is a chain of tea.Tick commands tagged with the round's
// session ID. A chain reschedules itself only while its round is active, so
// starting a new round or ending the current one lets old chains die out.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
)

// LightTickMsg is one base tick of the lighting process.
type LightTickMsg struct {
	Session reflex.SessionID
	At      time.Time
}

// ClockTickMsg is one tick of the elapsed-time clock. It also drives redraws.
type ClockTickMsg struct {
	Session reflex.SessionID
	At      time.Time
}

// TimeUpMsg fires once when the round's time limit is reached.
type TimeUpMsg struct {
	Session reflex.SessionID
	At      time.Time
}

// FlashDoneMsg ends a cell flash.
type FlashDoneMsg struct {
	Cell int
	Seq  uint64
}

func lightTickCmd(id reflex.SessionID, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return LightTickMsg{Session: id, At: t}
	})
}

func clockTickCmd(id reflex.SessionID, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return ClockTickMsg{Session: id, At: t}
	})
}

func timeUpCmd(id reflex.SessionID, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(t time.Time) tea.Msg {
		return TimeUpMsg{Session: id, At: t}
	})
}

func flashCmd(f reflex.Flash, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return FlashDoneMsg{Cell: f.Cell, Seq: f.Seq}
	})
}
