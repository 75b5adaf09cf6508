package api

import (
	"context"
	"net/http"
)

// Bot API resources.
const (
	PathStart     = "/api/bot/start"
	PathPause     = "/api/bot/pause"
	PathResume    = "/api/bot/resume"
	PathStop      = "/api/bot/stop"
	PathStatus    = "/api/bot/status"
	PathPortfolio = "/api/portfolio"
	PathEquity    = "/api/equity"
	PathTrades    = "/api/trades"
)

// Status fetches the bot status.
func (c *Client) Status(ctx context.Context) (BotStatus, error) {
	var s BotStatus
	if err := c.Do(ctx, http.MethodGet, PathStatus, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Portfolio fetches the portfolio snapshot.
func (c *Client) Portfolio(ctx context.Context) (Portfolio, error) {
	var p Portfolio
	if err := c.Do(ctx, http.MethodGet, PathPortfolio, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Equity fetches the equity curve in delivery order.
func (c *Client) Equity(ctx context.Context) ([]EquityPoint, error) {
	var points []EquityPoint
	if err := c.Do(ctx, http.MethodGet, PathEquity, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Trades fetches the trade ledger in delivery order.
func (c *Client) Trades(ctx context.Context) ([]Trade, error) {
	var trades []Trade
	if err := c.Do(ctx, http.MethodGet, PathTrades, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// Start asks the bot to start. Parameters are passed through as given,
// only percent-encoded.
func (c *Client) Start(ctx context.Context, mode, symbol, interval string) error {
	path := WithQuery(PathStart,
		Param{Key: "mode", Value: mode},
		Param{Key: "symbol", Value: symbol},
		Param{Key: "interval", Value: interval},
	)
	return c.Do(ctx, http.MethodPost, path, nil)
}

// Pause pauses a running bot.
func (c *Client) Pause(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, PathPause, nil)
}

// Resume resumes a paused bot.
func (c *Client) Resume(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, PathResume, nil)
}

// Stop stops the bot.
func (c *Client) Stop(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, PathStop, nil)
}
