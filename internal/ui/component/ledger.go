package component

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
	"github.com/shopspring/decimal"
)

const (
	quantityPlaces = 8
	pricePlaces    = 2
	pnlPlaces      = 2
)

// FormatQuantity renders a trade quantity with 8 fractional digits.
func FormatQuantity(d decimal.Decimal) string {
	return d.StringFixed(quantityPlaces)
}

// FormatPrice renders a price with 2 fractional digits.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(pricePlaces)
}

// FormatPnL renders realized pnl with 2 fractional digits. Open trades
// have no pnl and render as an empty cell.
func FormatPnL(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(pnlPlaces)
}

// TradeLedger lists trades, one row each.
type TradeLedger struct {
	table *Table

	buyStyle  lipgloss.Style
	sellStyle lipgloss.Style
}

// NewTradeLedger creates the ledger with its fixed columns.
func NewTradeLedger() *TradeLedger {
	palette := style.DefaultPalette()
	return &TradeLedger{
		table: NewTable(
			TableColumn{Header: "Time", Width: 21, Align: lipgloss.Left},
			TableColumn{Header: "Symbol", Width: 12, Align: lipgloss.Left},
			TableColumn{Header: "Side", Width: 6, Align: lipgloss.Left},
			TableColumn{Header: "Qty", Width: 16, Align: lipgloss.Right},
			TableColumn{Header: "Price", Width: 14, Align: lipgloss.Right},
			TableColumn{Header: "PnL", Width: 12, Align: lipgloss.Right},
		),
		buyStyle:  lipgloss.NewStyle().Foreground(palette.Buy).Padding(0, 1),
		sellStyle: lipgloss.NewStyle().Foreground(palette.Sell).Padding(0, 1),
	}
}

// Render implements poller.TradeLedgerView. Every call rebuilds all rows.
func (l *TradeLedger) Render(trades []api.Trade) {
	l.table.Clear()
	for _, tr := range trades {
		row := []string{
			tr.TS.Local().Format(LabelLayout),
			tr.Symbol,
			tr.Side,
			FormatQuantity(tr.Qty),
			FormatPrice(tr.Price),
			FormatPnL(tr.PnL),
		}
		switch tr.Side {
		case "BUY", "buy":
			l.table.AddRow(row, l.buyStyle)
		case "SELL", "sell":
			l.table.AddRow(row, l.sellStyle)
		default:
			l.table.AddRow(row)
		}
	}
}

// Rows returns the rendered cell text.
func (l *TradeLedger) Rows() [][]string {
	return l.table.Rows()
}

// Table exposes the underlying table for sizing and scrolling.
func (l *TradeLedger) Table() *Table {
	return l.table
}

// View renders the ledger.
func (l *TradeLedger) View() string {
	return l.table.View()
}
