package component

import (
	"testing"
	"time"

	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/stretchr/testify/assert"
)

func TestStatusHeaderView(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h := NewStatusHeader("http://localhost:8080")
	h.now = func() time.Time { return now }

	assert.Contains(t, h.View(), "never synced")
	assert.Contains(t, h.View(), "unknown")

	h.SetStatus(api.BotStatus{"mode": "LIVE", "status": "PAUSED", "symbol": "ETHUSDT", "interval": "5m"})
	h.MarkSynced(now.Add(-3 * time.Second))

	view := h.View()
	assert.Contains(t, view, "PAUSED")
	assert.Contains(t, view, "LIVE ETHUSDT 5m")
	assert.Contains(t, view, "3 seconds ago")
	assert.Contains(t, view, "http://localhost:8080")
}
