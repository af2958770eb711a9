package exchange

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rickgao/coinfeed/internal/model"
)

type rankedTicker struct {
	ticker model.Ticker
	volume decimal.Decimal
	valid  bool
}

// TopByQuoteVolume sorts tickers by quoteVolume, highest first, and keeps at
// most n. Tickers without a parsable quoteVolume rank after all others; ties
// keep their input order. The input slice is not modified.
func TopByQuoteVolume(tickers []model.Ticker, n int) model.TickerList {
	ranked := make([]rankedTicker, len(tickers))
	for i, t := range tickers {
		vol, ok := t.QuoteVolume()
		ranked[i] = rankedTicker{ticker: t, volume: vol, valid: ok}
	}

	slices.SortStableFunc(ranked, func(a, b rankedTicker) int {
		if a.valid != b.valid {
			if a.valid {
				return -1
			}
			return 1
		}
		return b.volume.Cmp(a.volume)
	})

	n = max(0, min(n, len(ranked)))
	out := make(model.TickerList, n)
	for i := range out {
		out[i] = ranked[i].ticker
	}
	return out
}
