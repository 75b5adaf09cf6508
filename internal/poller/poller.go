// Package poller keeps the panel views in sync with the bot API.
package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/rovshanmuradov/botpanel/internal/api"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the result of one successful batch over all four feeds.
type Snapshot struct {
	Status    api.BotStatus
	Portfolio api.Portfolio
	Equity    []api.EquityPoint
	Trades    []api.Trade
	FetchedAt time.Time
}

// Poller fetches the four feeds and hands the results to the views.
//
// A batch is all-or-nothing: the four requests run concurrently, the batch
// waits for every one of them, and if any failed no view is touched.
type Poller struct {
	feeds   Feeds
	views   Views
	applyOn func(kind string, apply func())
	observe func(kind string, err error)
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Poller
type Option func(*Poller)

// WithApplyOn routes view updates through run, e.g. onto a UI event loop.
// kind tells a full snapshot from a status-only refresh. By default views are
// updated on the calling goroutine.
func WithApplyOn(run func(kind string, apply func())) Option {
	return func(p *Poller) {
		p.applyOn = run
	}
}

// Refresh kinds passed to the observer.
const (
	KindFull   = "full"
	KindStatus = "status"
)

// WithObserver is called after every refresh with its kind and outcome.
func WithObserver(observe func(kind string, err error)) Option {
	return func(p *Poller) {
		if observe != nil {
			p.observe = observe
		}
	}
}

// New creates a poller over feeds rendering into views.
func New(feeds Feeds, views Views, logger *zap.Logger, opts ...Option) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Poller{
		feeds:   feeds,
		views:   views,
		applyOn: func(_ string, apply func()) { apply() },
		observe: func(string, error) {},
		logger:  logger.Named("poller"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchAll issues the four feed requests concurrently and returns once all
// of them settled. Siblings are not cancelled when one fails.
func (p *Poller) FetchAll(ctx context.Context) (*Snapshot, error) {
	var (
		g    errgroup.Group
		snap Snapshot
	)

	g.Go(func() error {
		s, err := p.feeds.Status(ctx)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		snap.Status = s
		return nil
	})
	g.Go(func() error {
		pf, err := p.feeds.Portfolio(ctx)
		if err != nil {
			return fmt.Errorf("portfolio: %w", err)
		}
		snap.Portfolio = pf
		return nil
	})
	g.Go(func() error {
		eq, err := p.feeds.Equity(ctx)
		if err != nil {
			return fmt.Errorf("equity: %w", err)
		}
		snap.Equity = eq
		return nil
	})
	g.Go(func() error {
		tr, err := p.feeds.Trades(ctx)
		if err != nil {
			return fmt.Errorf("trades: %w", err)
		}
		snap.Trades = tr
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.FetchedAt = p.now()
	return &snap, nil
}

// Apply renders a snapshot into all four views.
func (p *Poller) Apply(snap *Snapshot) {
	if snap == nil {
		return
	}
	p.views.Status.Render(snap.Status)
	p.views.Portfolio.Render(snap.Portfolio)
	p.views.Equity.Render(snap.Equity)
	p.views.Trades.Render(snap.Trades)
}

// RefreshAll runs one full batch. Failures are logged and swallowed so a
// periodic caller is never interrupted; they were already reported by the
// transport.
func (p *Poller) RefreshAll(ctx context.Context) {
	snap, err := p.FetchAll(ctx)
	p.observe(KindFull, err)
	if err != nil {
		p.logger.Warn("Refresh failed", zap.Error(err))
		return
	}

	p.applyOn(KindFull, func() { p.Apply(snap) })
	p.logger.Debug("Refresh applied",
		zap.Int("equity_points", len(snap.Equity)),
		zap.Int("trades", len(snap.Trades)))
}

// RefreshStatus refreshes the status view only. The transport error is
// returned to the caller.
func (p *Poller) RefreshStatus(ctx context.Context) error {
	s, err := p.feeds.Status(ctx)
	p.observe(KindStatus, err)
	if err != nil {
		return err
	}

	p.applyOn(KindStatus, func() { p.views.Status.Render(s) })
	return nil
}
