package poller

import (
	"context"

	"github.com/rovshanmuradov/botpanel/internal/api"
)

// Feeds is the read side of the bot API.
type Feeds interface {
	Status(ctx context.Context) (api.BotStatus, error)
	Portfolio(ctx context.Context) (api.Portfolio, error)
	Equity(ctx context.Context) ([]api.EquityPoint, error)
	Trades(ctx context.Context) ([]api.Trade, error)
}

// StatusView shows the raw bot status.
type StatusView interface {
	Render(status api.BotStatus)
}

// PortfolioView shows the raw portfolio snapshot.
type PortfolioView interface {
	Render(portfolio api.Portfolio)
}

// EquityChartView draws the equity curve.
type EquityChartView interface {
	Render(points []api.EquityPoint)
}

// TradeLedgerView lists the trades.
type TradeLedgerView interface {
	Render(trades []api.Trade)
}

// Views groups the four renderers fed by the poller.
type Views struct {
	Status    StatusView
	Portfolio PortfolioView
	Equity    EquityChartView
	Trades    TradeLedgerView
}
