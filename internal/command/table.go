package command

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Action names an operator command.
type Action string

const (
	ActionStart   Action = "start"
	ActionPause   Action = "pause"
	ActionResume  Action = "resume"
	ActionStop    Action = "stop"
	ActionRefresh Action = "refresh"
)

// Handler executes one action.
type Handler func(ctx context.Context) error

var (
	// ErrUnknownCommand is returned by Run for an unregistered action.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned by Register when the action exists.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Table maps action names to handlers. It is filled once at startup.
type Table struct {
	handlers map[Action]Handler
	observe  func(action Action, elapsed time.Duration, err error)
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{handlers: make(map[Action]Handler)}
}

// Register adds a handler for action.
func (t *Table) Register(action Action, h Handler) error {
	if h == nil {
		return fmt.Errorf("register %q: nil handler", action)
	}
	if _, exists := t.handlers[action]; exists {
		return fmt.Errorf("register %q: %w", action, ErrDuplicateCommand)
	}
	t.handlers[action] = h
	return nil
}

// Observe installs fn to be called after every executed command. Set it
// before the table is shared.
func (t *Table) Observe(fn func(action Action, elapsed time.Duration, err error)) {
	t.observe = fn
}

// Run executes the handler registered for action.
func (t *Table) Run(ctx context.Context, action Action) error {
	h, ok := t.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, action)
	}

	start := time.Now()
	err := h(ctx)
	if t.observe != nil {
		t.observe(action, time.Since(start), err)
	}
	return err
}

// NewDefaultTable registers the lifecycle commands of d. params is read at
// execution time so the start command picks up the current form inputs.
func NewDefaultTable(d *Dispatcher, params func() StartParams) *Table {
	t := NewTable()
	// the set below is fixed, so Register cannot fail
	_ = t.Register(ActionStart, func(ctx context.Context) error { return d.Start(ctx, params()) })
	_ = t.Register(ActionPause, d.Pause)
	_ = t.Register(ActionResume, d.Resume)
	_ = t.Register(ActionStop, d.Stop)
	_ = t.Register(ActionRefresh, d.Refresh)
	return t
}
