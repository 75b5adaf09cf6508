package api

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// BotStatus is the bot's operational state (mode, symbol, interval, run
// state). It is rendered verbatim and never validated.
type BotStatus map[string]any

// Portfolio is the bot's holdings and balances, rendered verbatim.
type Portfolio map[string]any

// Field returns the string form of key, or "" when absent.
func (s BotStatus) Field(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Timestamp accepts either an RFC 3339 string or a numeric epoch in
// milliseconds.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] == '"' {
		raw, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		if raw == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		t.Time = parsed
		return nil
	}

	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = time.UnixMilli(int64(ms))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339Nano))), nil
}

// EquityPoint is one sample of the equity curve.
type EquityPoint struct {
	TS     Timestamp       `json:"ts"`
	Equity decimal.Decimal `json:"equity"`
}

// Trade is one row of the trade ledger. PnL is nil for open positions.
type Trade struct {
	ID     int64            `json:"id"`
	TS     Timestamp        `json:"ts"`
	Symbol string           `json:"symbol"`
	Side   string           `json:"side"`
	Qty    decimal.Decimal  `json:"qty"`
	Price  decimal.Decimal  `json:"price"`
	Fee    decimal.Decimal  `json:"fee"`
	PnL    *decimal.Decimal `json:"pnl"`
}
