package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterConcurrentWrites(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "panel.log")

	writer, err := OpenFile(testFile, 20*time.Millisecond, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	numGoroutines := 10
	linesPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < linesPerGoroutine; j++ {
				_, err := writer.Write([]byte(fmt.Sprintf("goroutine %d line %d\n", id, j)))
				assert.NoError(t, err)
			}
		}(i)
	}

	// flushes race with the writers
	flushDone := make(chan struct{})
	go func() {
		defer close(flushDone)
		for i := 0; i < 10; i++ {
			_ = writer.Sync()
			time.Sleep(5 * time.Millisecond)
		}
	}()

	wg.Wait()
	<-flushDone
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, numGoroutines*linesPerGoroutine, strings.Count(string(data), "\n"))
}

func TestFileWriterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.log")
	writer, err := OpenFile(path, time.Hour, nil)
	require.NoError(t, err)

	_, err = writer.Write([]byte("before close\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())

	_, err = writer.Write([]byte("after close\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NoError(t, writer.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "before close\n", string(data))
}

func TestRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "panel.log")

	writer, err := OpenRotating(path, Rotation{MaxSizeMB: 1, MaxBackups: 2}, time.Hour, nil)
	require.NoError(t, err)

	_, err = writer.Write([]byte("rotating line\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rotating line\n", string(data))

	require.NoError(t, writer.Close())
	_, err = writer.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
