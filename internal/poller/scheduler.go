package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the cadence of the periodic full refresh.
const DefaultInterval = 5 * time.Second

// ErrSchedulerRunning is returned by Start on a scheduler that already runs.
var ErrSchedulerRunning = errors.New("scheduler already running")

// TickerFunc creates a tick source for interval d and a function to stop it.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Scheduler invokes a function once on Start and then on every tick until
// Stop. Each invocation runs in its own goroutine: a slow cycle never holds
// back the next one, and nothing is cancelled when a newer cycle begins.
type Scheduler struct {
	interval  time.Duration
	fn        func(context.Context)
	newTicker TickerFunc
	logger    *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	loopDone chan struct{}
	inflight sync.WaitGroup
	runs     uint64
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithTicker replaces the wall-clock ticker, typically with a channel a test
// writes to.
func WithTicker(f TickerFunc) SchedulerOption {
	return func(s *Scheduler) {
		s.newTicker = f
	}
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(interval time.Duration, fn func(context.Context), logger *zap.Logger, opts ...SchedulerOption) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		interval:  interval,
		fn:        fn,
		newTicker: realTicker,
		logger:    logger.Named("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs fn immediately and then every interval until Stop or until ctx
// is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrSchedulerRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	ticks, stopTicker := s.newTicker(s.interval)
	s.cancel = cancel
	s.loopDone = make(chan struct{})

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))

	s.invokeLocked(loopCtx)
	go s.loop(loopCtx, ticks, stopTicker, s.loopDone)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, ticks <-chan time.Time, stopTicker func(), done chan struct{}) {
	defer close(done)
	defer stopTicker()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			s.mu.Lock()
			if ctx.Err() == nil {
				s.invokeLocked(ctx)
			}
			s.mu.Unlock()
		}
	}
}

// invokeLocked must be called with s.mu held.
func (s *Scheduler) invokeLocked(ctx context.Context) {
	s.runs++
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.fn(ctx)
	}()
}

// Stop ends the tick loop and waits for in-flight invocations. It is safe
// to call on a stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.loopDone
	s.cancel, s.loopDone = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.inflight.Wait()

	s.logger.Info("Scheduler stopped", zap.Uint64("runs", s.Runs()))
}

// Runs returns how many times fn was invoked.
func (s *Scheduler) Runs() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
