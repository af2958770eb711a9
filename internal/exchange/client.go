package exchange

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/rickgao/coinfeed/internal/config"
	"github.com/rickgao/coinfeed/internal/model"
	"github.com/rickgao/coinfeed/internal/upstream"
)

// BaseURLKey is the configuration key holding the exchange base URL.
const BaseURLKey = "services.binance.base_url"

const tickerPath = "/api/v3/ticker/24hr"

// Client provides access to the Binance public REST API.
type Client struct {
	baseURL string
	http    *upstream.Client
	logger  *slog.Logger
}

// NewClient resolves the base URL from cfg once. An absent or non-string
// value falls back to config.DefaultBinanceURL.
func NewClient(cfg config.Lookup, opts ...upstream.Option) *Client {
	baseURL := config.String(cfg, BaseURLKey, config.DefaultBinanceURL)
	uc := upstream.NewClient("binance", opts...)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    uc,
		logger:  uc.Logger(),
	}
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchTopCoins returns the TopCoinsLimit tickers with the highest quote
// volume, highest first. Any failure yields an empty list.
func (c *Client) FetchTopCoins(ctx context.Context) model.TickerList {
	resp, err := c.http.Get(ctx, c.baseURL+tickerPath, nil)
	if err != nil {
		c.logger.Debug("fetch top coins failed", "request_id", resp.RequestID, "err", err)
		return model.TickerList{}
	}

	var tickers []model.Ticker
	if err := resp.DecodeJSON(&tickers); err != nil {
		c.logger.Debug("fetch top coins: unexpected body", "request_id", resp.RequestID, "err", err)
		return model.TickerList{}
	}

	return TopByQuoteVolume(tickers, model.TopCoinsLimit)
}

// FetchCoinDetail returns the 24h ticker for one symbol. The symbol is
// upper-cased before sending. ok is false on any failure; an upstream {}
// is returned as an empty, present record.
func (c *Client) FetchCoinDetail(ctx context.Context, symbol string) (model.Ticker, bool) {
	query := url.Values{}
	query.Set("symbol", strings.ToUpper(symbol))

	resp, err := c.http.Get(ctx, c.baseURL+tickerPath, query)
	if err != nil {
		c.logger.Debug("fetch coin detail failed",
			"symbol", symbol,
			"request_id", resp.RequestID,
			"err", err,
		)
		return nil, false
	}

	var ticker model.Ticker
	if err := resp.DecodeJSON(&ticker); err != nil || ticker == nil {
		c.logger.Debug("fetch coin detail: unexpected body", "symbol", symbol, "request_id", resp.RequestID)
		return nil, false
	}

	return ticker, true
}
