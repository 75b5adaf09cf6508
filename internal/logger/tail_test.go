package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTailKeepsMostRecent(t *testing.T) {
	tail := NewTail(3)
	for i := 0; i < 5; i++ {
		tail.Add(Entry{Message: fmt.Sprintf("m%d", i)})
	}

	recent := tail.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "m2", recent[0].Message)
	assert.Equal(t, "m4", recent[2].Message)
	assert.Equal(t, uint64(5), tail.Total())

	limited := tail.Recent(2)
	require.Len(t, limited, 2)
	assert.Equal(t, "m3", limited[0].Message)
	assert.Equal(t, "m4", limited[1].Message)
}

func TestTailBeforeWrap(t *testing.T) {
	tail := NewTail(10)
	assert.Empty(t, tail.Recent(5))

	tail.Add(Entry{Message: "a"})
	tail.Add(Entry{Message: "b"})
	recent := tail.Recent(5)
	require.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].Message)
	assert.Equal(t, "b", recent[1].Message)
}

func TestTailExactlyFull(t *testing.T) {
	tail := NewTail(2)
	tail.Add(Entry{Message: "a"})
	tail.Add(Entry{Message: "b"})

	recent := tail.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].Message)
}

func TestTailConcurrentAccess(t *testing.T) {
	tail := NewTail(50)

	var wg sync.WaitGroup
	numGoroutines := 10
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tail.Add(Entry{Message: fmt.Sprintf("%d/%d", id, j)})
				_ = tail.Recent(5)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, uint64(1000), tail.Total())
	assert.Len(t, tail.Recent(0), 50)
}

func TestLoggerFeedsTailAndFile(t *testing.T) {
	tail := NewTail(10)
	path := filepath.Join(t.TempDir(), "panel.log")
	file, err := OpenFile(path, time.Hour, nil)
	require.NoError(t, err)

	log := New(Options{File: file, Tail: tail}).Named("poller")
	log.Debug("hidden")
	log.With(zap.String("feed", "equity")).Warn("Refresh failed", zap.Error(errors.New("HTTP 500")))
	require.NoError(t, file.Close())

	recent := tail.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, zapcore.WarnLevel, recent[0].Level)
	assert.Equal(t, "poller", recent[0].Logger)
	assert.Equal(t, "Refresh failed", recent[0].Message)
	assert.Equal(t, "equity", recent[0].Fields["feed"])
	assert.Equal(t, "HTTP 500", recent[0].Fields["error"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARN] poller Refresh failed")
	assert.NotContains(t, string(data), "hidden")
}

func TestDebugLevel(t *testing.T) {
	tail := NewTail(10)
	log := New(Options{Debug: true, Tail: tail})
	log.Debug("visible")
	assert.Len(t, tail.Recent(0), 1)
}

func TestNewWithoutSinks(t *testing.T) {
	log := New(Options{})
	log.Info("nowhere")
}
