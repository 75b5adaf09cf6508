// Package command turns operator actions into bot API calls followed by a
// resync of the affected views.
package command

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// DefaultSymbol is used when the operator leaves the symbol empty.
const DefaultSymbol = "BTCUSDT"

// Controller is the write side of the bot API.
type Controller interface {
	Start(ctx context.Context, mode, symbol, interval string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Resyncer refreshes views after a successful command.
type Resyncer interface {
	RefreshAll(ctx context.Context)
	RefreshStatus(ctx context.Context) error
}

// StartParams are the operator inputs of a start command.
type StartParams struct {
	Mode     string
	Symbol   string
	Interval string
}

// Normalize substitutes defaultSymbol for an empty symbol, then trims the
// symbol and the interval. A blank symbol stays blank and mode passes
// through untouched; the API validates both.
func (p StartParams) Normalize(defaultSymbol string) StartParams {
	symbol := p.Symbol
	if symbol == "" {
		symbol = defaultSymbol
	}
	return StartParams{
		Mode:     p.Mode,
		Symbol:   strings.TrimSpace(symbol),
		Interval: strings.TrimSpace(p.Interval),
	}
}

// Dispatcher issues lifecycle commands. A failed command never triggers a
// resync: the views keep their last state and the transport has already
// surfaced the error.
type Dispatcher struct {
	api           Controller
	resync        Resyncer
	defaultSymbol string
	logger        *zap.Logger
}

// NewDispatcher creates a dispatcher. An empty defaultSymbol means DefaultSymbol.
func NewDispatcher(api Controller, resync Resyncer, defaultSymbol string, logger *zap.Logger) *Dispatcher {
	if defaultSymbol == "" {
		defaultSymbol = DefaultSymbol
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		api:           api,
		resync:        resync,
		defaultSymbol: defaultSymbol,
		logger:        logger.Named("command"),
	}
}

// Start starts the bot and resyncs all views.
func (d *Dispatcher) Start(ctx context.Context, params StartParams) error {
	p := params.Normalize(d.defaultSymbol)
	logger := d.logger.With(
		zap.String("mode", p.Mode),
		zap.String("symbol", p.Symbol),
		zap.String("interval", p.Interval))

	if err := d.api.Start(ctx, p.Mode, p.Symbol, p.Interval); err != nil {
		logger.Warn("Start failed", zap.Error(err))
		return err
	}

	logger.Info("Bot started")
	d.resync.RefreshAll(ctx)
	return nil
}

// Pause pauses the bot and refreshes the status view.
func (d *Dispatcher) Pause(ctx context.Context) error {
	if err := d.api.Pause(ctx); err != nil {
		d.logger.Warn("Pause failed", zap.Error(err))
		return err
	}
	d.logger.Info("Bot paused")
	return d.resync.RefreshStatus(ctx)
}

// Resume resumes the bot and refreshes the status view.
func (d *Dispatcher) Resume(ctx context.Context) error {
	if err := d.api.Resume(ctx); err != nil {
		d.logger.Warn("Resume failed", zap.Error(err))
		return err
	}
	d.logger.Info("Bot resumed")
	return d.resync.RefreshStatus(ctx)
}

// Stop stops the bot and resyncs all views.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if err := d.api.Stop(ctx); err != nil {
		d.logger.Warn("Stop failed", zap.Error(err))
		return err
	}
	d.logger.Info("Bot stopped")
	d.resync.RefreshAll(ctx)
	return nil
}

// Refresh runs a manual full resync.
func (d *Dispatcher) Refresh(ctx context.Context) error {
	d.resync.RefreshAll(ctx)
	return nil
}
