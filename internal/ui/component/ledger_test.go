package component

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "12.35", FormatPnL(decPtr("12.345")))
	assert.Equal(t, "-3.10", FormatPnL(decPtr("-3.1")))
	assert.Equal(t, "", FormatPnL(nil))
	assert.Equal(t, "0.00000000", FormatQuantity(dec("0.000000001")))
	assert.Equal(t, "1.50000000", FormatQuantity(dec("1.5")))
	assert.Equal(t, "42000.00", FormatPrice(dec("42000")))
	assert.Equal(t, "0.13", FormatPrice(dec("0.125")))
}

func TestTradeLedgerRebuildsRows(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := NewTradeLedger()

	ledger.Render([]api.Trade{
		{ID: 1, TS: api.Timestamp{Time: ts}, Symbol: "BTCUSDT", Side: "BUY", Qty: dec("0.01"), Price: dec("42000.5")},
		{ID: 2, TS: api.Timestamp{Time: ts}, Symbol: "BTCUSDT", Side: "SELL", Qty: dec("0.01"), Price: dec("43000"), PnL: decPtr("12.345")},
	})

	rows := ledger.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		ts.Local().Format(LabelLayout), "BTCUSDT", "BUY", "0.01000000", "42000.50", "",
	}, rows[0])
	assert.Equal(t, "12.35", rows[1][5])

	ledger.Render([]api.Trade{
		{ID: 3, TS: api.Timestamp{Time: ts}, Symbol: "ETHUSDT", Side: "BUY", Qty: dec("2"), Price: dec("3000")},
	})
	rows = ledger.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "ETHUSDT", rows[0][1])

	ledger.Render(nil)
	assert.Empty(t, ledger.Rows())
	assert.Contains(t, ledger.View(), "no rows")
}

func TestTableScrolling(t *testing.T) {
	table := NewTable(TableColumn{Header: "N", Width: 6})
	for _, n := range []string{"r1", "r2", "r3"} {
		table.AddRow([]string{n})
	}
	table.SetHeight(2)

	assert.Contains(t, table.View(), "r1")
	assert.NotContains(t, table.View(), "r3")

	table.ScrollDown().ScrollDown().ScrollDown()
	assert.NotContains(t, table.View(), "r1")
	assert.Contains(t, table.View(), "r3")

	table.ScrollUp()
	assert.Contains(t, table.View(), "r1")

	table.Clear()
	assert.Equal(t, 0, len(table.rows))
}

func TestRenderCellTruncates(t *testing.T) {
	cell := renderCell("abcdefghij", 8, 0, NewTable().rowStyle)
	assert.Contains(t, cell, "abc...")
	assert.NotContains(t, cell, "abcdefghij")
}

func TestRenderCellTruncatesByDisplayWidth(t *testing.T) {
	for _, content := range []string{"ÉTHÜSDTÉÉÉ", "比特币比特币", "€€€€€€€€€€"} {
		cell := renderCell(content, 8, 0, NewTable().rowStyle)
		assert.True(t, utf8.ValidString(cell), content)
		assert.Equal(t, 8, lipgloss.Width(cell), content)
		assert.Contains(t, cell, "...", content)
	}

	assert.Contains(t, renderCell("ÉTHÜSDTÉÉÉ", 8, 0, NewTable().rowStyle), "ÉTH...")
}
