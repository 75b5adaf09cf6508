package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rovshanmuradov/botpanel/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestObserveRequestDropsQuery(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("POST", "/api/bot/start?mode=LIVE&symbol=BTCUSDT&interval=1m", 200, 10*time.Millisecond, nil)
	m.ObserveRequest("POST", "/api/bot/start?mode=BACKTEST&symbol=ETHUSDT&interval=5m", 200, 10*time.Millisecond, nil)
	m.ObserveRequest("GET", "/api/trades", 0, time.Millisecond, errors.New("refused"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/bot/start", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/trades", "none")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestObserveRefreshAndCommand(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRefresh("full", nil)
	m.ObserveRefresh("full", errors.New("status: down"))
	m.ObserveRefresh("status", nil)
	m.ObserveCommand(command.ActionStop, time.Millisecond, errors.New("409"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("full", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("full", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("status", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("stop", "error")))
}

func TestServeExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveRefresh("full", nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, reg, zap.NewNop()) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr + "/metrics")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}
