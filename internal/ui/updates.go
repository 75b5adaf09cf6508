package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// UpdateSender moves view updates produced on worker goroutines onto the
// bubbletea event loop. Until a program is attached updates run inline.
type UpdateSender struct {
	mu     sync.RWMutex
	sender Sender
	logger *zap.Logger
}

// NewUpdateSender creates an update sender with no program attached.
func NewUpdateSender(logger *zap.Logger) *UpdateSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateSender{logger: logger.Named("ui")}
}

// Attach routes subsequent updates through s.
func (us *UpdateSender) Attach(s Sender) {
	us.mu.Lock()
	us.sender = s
	us.mu.Unlock()
	us.logger.Debug("Update sender attached")
}

// Apply hands fn to the event loop. It is the hook given to
// poller.WithApplyOn. Send blocks until the program is running and returns
// without delivering once it has exited.
func (us *UpdateSender) Apply(kind string, fn func()) {
	us.mu.RLock()
	s := us.sender
	us.mu.RUnlock()

	if s == nil {
		fn()
		return
	}
	s.Send(ApplyMsg{Kind: kind, Fn: fn})
}
