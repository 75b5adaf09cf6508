package ui

import (
	"time"

	"github.com/rovshanmuradov/botpanel/internal/command"
)

// Tea message types for UI communication

// ApplyMsg carries a view update to the event loop. The receiving model
// runs Fn and nothing else may touch the views concurrently. Kind is the
// poller refresh kind that produced it.
type ApplyMsg struct {
	Kind string
	Fn   func()
}

// CommandStartedMsg marks an operator command as in flight.
type CommandStartedMsg struct {
	Action command.Action
}

// CommandDoneMsg reports the outcome of an operator command. The error has
// already been shown through the status slot when it came from the API.
type CommandDoneMsg struct {
	Action   command.Action
	Err      error
	Duration time.Duration
}

// ClockMsg drives periodic redraws of time dependent parts of the screen.
type ClockMsg time.Time
