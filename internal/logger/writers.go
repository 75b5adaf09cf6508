package logger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation bounds the on-disk size of the log. Zero values keep
// lumberjack's defaults (100 MB, no backup limit, no age limit).
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// FileWriter is a buffered, thread-safe log file sink with periodic flush.
// It satisfies zapcore.WriteSyncer.
type FileWriter struct {
	mu      sync.Mutex
	writer  *bufio.Writer
	out     io.WriteCloser
	ticker  *time.Ticker
	done    chan struct{}
	closed  bool
	onError func(error)
}

// OpenFile opens (creating directories as needed) path in append mode and
// flushes it every flushInterval. onError may be nil.
func OpenFile(path string, flushInterval time.Duration, onError func(error)) (*FileWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return newFileWriter(file, flushInterval, onError), nil
}

// OpenRotating is OpenFile backed by a lumberjack logger that rotates path
// according to rot.
func OpenRotating(path string, rot Rotation, flushInterval time.Duration, onError func(error)) (*FileWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rot.MaxSizeMB,
		MaxBackups: rot.MaxBackups,
		MaxAge:     rot.MaxAgeDays,
		Compress:   rot.Compress,
		LocalTime:  true,
	}
	return newFileWriter(out, flushInterval, onError), nil
}

func newFileWriter(out io.WriteCloser, flushInterval time.Duration, onError func(error)) *FileWriter {
	if flushInterval <= 0 {
		flushInterval = time.Second
	}
	if onError == nil {
		onError = func(error) {}
	}

	fw := &FileWriter{
		writer:  bufio.NewWriter(out),
		out:     out,
		ticker:  time.NewTicker(flushInterval),
		done:    make(chan struct{}),
		onError: onError,
	}

	go fw.periodicFlush()

	return fw
}

// Write writes data to the buffer
func (fw *FileWriter) Write(data []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return 0, os.ErrClosed
	}

	n, err := fw.writer.Write(data)
	if err != nil {
		return n, fmt.Errorf("failed to write data: %w", err)
	}
	return n, nil
}

// Sync flushes buffered data to disk.
func (fw *FileWriter) Sync() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.flushLocked()
}

func (fw *FileWriter) flushLocked() error {
	if fw.closed {
		return nil
	}
	if err := fw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	// lumberjack has no fsync; plain files do
	if f, ok := fw.out.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync file: %w", err)
		}
	}
	return nil
}

func (fw *FileWriter) periodicFlush() {
	for {
		select {
		case <-fw.ticker.C:
			if err := fw.Sync(); err != nil {
				fw.onError(err)
			}
		case <-fw.done:
			return
		}
	}
}

// Close flushes and closes the file. Further writes fail with os.ErrClosed.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return nil
	}

	close(fw.done)
	fw.ticker.Stop()

	if err := fw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	fw.closed = true

	if err := fw.out.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
