package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one log line kept by the tail.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  map[string]interface{}
}

// Tail is a fixed-size ring of the most recent log entries. It backs the
// dashboard log pane.
type Tail struct {
	mu           sync.Mutex
	ring         []Entry
	maxSize      int
	currentIndex int
	wrapped      bool

	// Stats
	totalEntries uint64
}

// NewTail creates a ring holding up to maxSize entries.
func NewTail(maxSize int) *Tail {
	if maxSize <= 0 {
		maxSize = 200
	}
	return &Tail{
		ring:    make([]Entry, maxSize),
		maxSize: maxSize,
	}
}

// Add stores an entry, overwriting the oldest once full.
func (t *Tail) Add(entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ring[t.currentIndex] = entry
	t.currentIndex = (t.currentIndex + 1) % t.maxSize
	if t.currentIndex == 0 {
		t.wrapped = true
	}
	t.totalEntries++
}

// Recent returns up to limit entries, oldest first. limit <= 0 means all.
func (t *Tail) Recent(limit int) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := t.currentIndex
	start := 0
	if t.wrapped {
		count = t.maxSize
		start = t.currentIndex
	}

	skip := 0
	if limit > 0 && limit < count {
		skip = count - limit
	}

	out := make([]Entry, 0, count-skip)
	for i := skip; i < count; i++ {
		out = append(out, t.ring[(start+i)%t.maxSize])
	}
	return out
}

// Total returns how many entries were ever added.
func (t *Tail) Total() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalEntries
}

// Core returns a zapcore.Core that feeds the tail.
func (t *Tail) Core(level zapcore.LevelEnabler) zapcore.Core {
	return &tailCore{LevelEnabler: level, tail: t}
}

type tailCore struct {
	zapcore.LevelEnabler
	tail   *Tail
	fields []zapcore.Field
}

func (c *tailCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &tailCore{LevelEnabler: c.LevelEnabler, tail: c.tail, fields: merged}
}

func (c *tailCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *tailCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	c.tail.Add(Entry{
		Time:    entry.Time,
		Level:   entry.Level,
		Logger:  entry.LoggerName,
		Message: entry.Message,
		Fields:  enc.Fields,
	})
	return nil
}

func (c *tailCore) Sync() error {
	return nil
}
