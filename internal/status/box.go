// Package status holds the panel's single-slot message surface.
package status

import (
	"sync"
	"time"
)

// Reporter receives human-readable status or error messages.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(message string)

// Report calls f(message).
func (f ReporterFunc) Report(message string) {
	f(message)
}

// Box is a single-slot text sink. Every Report replaces the previous text;
// there is no history and no deduplication, the last completed write wins.
type Box struct {
	mu      sync.RWMutex
	text    string
	updated time.Time
	now     func() time.Time
}

// NewBox creates an empty box
func NewBox() *Box {
	return &Box{now: time.Now}
}

// Report replaces the displayed text with message.
func (b *Box) Report(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = message
	b.updated = b.now()
}

// Text returns the current text.
func (b *Box) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// UpdatedAt returns the time of the last write, zero if nothing was written yet.
func (b *Box) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updated
}
