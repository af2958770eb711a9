package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopCoinsLimit caps the number of tickers in a TickerList.
const TopCoinsLimit = 10

// -----------------------------------------------------------------------------
// Exchange Types
// -----------------------------------------------------------------------------

// Ticker is one 24h statistics record as returned by the exchange
// (symbol, lastPrice, quoteVolume, ...). No schema is enforced.
type Ticker map[string]any

// Symbol returns the "symbol" field, or "" when missing or not a string.
func (t Ticker) Symbol() string {
	s, _ := t["symbol"].(string)
	return s
}

// QuoteVolume parses the "quoteVolume" field. The exchange sends it as a
// decimal string; plain JSON numbers are accepted too. ok is false when the
// field is missing or unparsable.
func (t Ticker) QuoteVolume() (decimal.Decimal, bool) {
	switch v := t["quoteVolume"].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Zero, false
	}
}

// TickerList is an ordered slice of tickers, highest quote volume first.
type TickerList []Ticker

// Symbols returns the symbols in list order.
func (l TickerList) Symbols() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Symbol()
	}
	return out
}

// -----------------------------------------------------------------------------
// Gateway Types
// -----------------------------------------------------------------------------

// GatewayResult is a JSON object returned by the tool service, copied key for
// key. An empty result means the call produced nothing usable.
type GatewayResult map[string]any

// Empty reports whether the result carries no data.
func (r GatewayResult) Empty() bool {
	return len(r) == 0
}

// -----------------------------------------------------------------------------
// Recorder Types
// -----------------------------------------------------------------------------

// TickerSnapshot is one recorded TickerList.
type TickerSnapshot struct {
	ID      uuid.UUID  // Snapshot ID shared by every row of the snapshot
	TakenAt time.Time  // When the list was fetched
	Tickers TickerList // Ranked tickers, rank = index + 1
}

// NewTickerSnapshot stamps a list with a fresh ID and time.
func NewTickerSnapshot(tickers TickerList, at time.Time) TickerSnapshot {
	return TickerSnapshot{
		ID:      uuid.New(),
		TakenAt: at.UTC(),
		Tickers: tickers,
	}
}

// String implements fmt.Stringer for logging.
func (s TickerSnapshot) String() string {
	return fmt.Sprintf("snapshot %s (%d tickers at %s)", s.ID, len(s.Tickers), s.TakenAt.Format(time.RFC3339))
}
