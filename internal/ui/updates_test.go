package ui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func TestUpdateSenderInlineBeforeAttach(t *testing.T) {
	us := NewUpdateSender(zap.NewNop())

	ran := false
	us.Apply("full", func() { ran = true })

	assert.True(t, ran)
}

func TestUpdateSenderRoutesThroughProgram(t *testing.T) {
	us := NewUpdateSender(nil)
	rec := &recordingSender{}
	us.Attach(rec)

	ran := false
	us.Apply("status", func() { ran = true })

	assert.False(t, ran, "update must wait for the event loop")
	require.Len(t, rec.msgs, 1)
	msg, ok := rec.msgs[0].(ApplyMsg)
	require.True(t, ok)
	assert.Equal(t, "status", msg.Kind)
	msg.Fn()
	assert.True(t, ran)
}

func TestUpdateSenderConcurrent(t *testing.T) {
	us := NewUpdateSender(nil)
	rec := &recordingSender{}
	us.Attach(rec)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				us.Apply("full", func() {})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, rec.msgs, 1000)
}
