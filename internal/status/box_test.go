package status

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBoxLastWriteWins(t *testing.T) {
	box := NewBox()
	assert.Empty(t, box.Text())
	assert.True(t, box.UpdatedAt().IsZero())

	box.Report("first")
	box.Report("second")

	assert.Equal(t, "second", box.Text())
	assert.False(t, box.UpdatedAt().IsZero())
}

func TestBoxTracksUpdateTime(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	box := NewBox()
	box.now = func() time.Time { return fixed }

	box.Report("hello")
	assert.Equal(t, fixed, box.UpdatedAt())
}

func TestBoxConcurrentReports(t *testing.T) {
	box := NewBox()
	written := make(map[string]bool)

	var wg sync.WaitGroup
	numGoroutines := 20
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		written[fmt.Sprintf("message %d", i)] = true
		go func(id int) {
			defer wg.Done()
			box.Report(fmt.Sprintf("message %d", id))
			_ = box.Text()
		}(i)
	}
	wg.Wait()

	assert.True(t, written[box.Text()], "last text must be one of the reported messages: %q", box.Text())
}

func TestReporterFunc(t *testing.T) {
	var got string
	var r Reporter = ReporterFunc(func(message string) { got = message })
	r.Report("boom")
	assert.Equal(t, "boom", got)
}
