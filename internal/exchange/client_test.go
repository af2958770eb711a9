package exchange

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/coinfeed/internal/config"
	"github.com/rickgao/coinfeed/internal/model"
	"github.com/rickgao/coinfeed/internal/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.Map{BaseURLKey: server.URL}, upstream.WithTimeout(5*time.Second))
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Lookup
		want string
	}{
		{"configured", config.Map{BaseURLKey: "https://testnet.binance.vision"}, "https://testnet.binance.vision"},
		{"trailing slash trimmed", config.Map{BaseURLKey: "https://testnet.binance.vision/"}, "https://testnet.binance.vision"},
		{"absent", config.Map{}, "https://api.binance.com"},
		{"not a string", config.Map{BaseURLKey: 8080}, "https://api.binance.com"},
		{"nil lookup", nil, "https://api.binance.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewClient(tt.cfg).BaseURL())
		})
	}
}

func TestFetchTopCoins(t *testing.T) {
	t.Run("sorts by quote volume and keeps ten", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)

			fmt.Fprint(w, "[")
			for i := 0; i < 15; i++ {
				if i > 0 {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"symbol":"C%02d","quoteVolume":"%d.5"}`, i, i*100)
			}
			fmt.Fprint(w, "]")
		})

		got := c.FetchTopCoins(context.Background())

		require.Len(t, got, 10)
		assert.Equal(t, []string{"C14", "C13", "C12", "C11", "C10", "C09", "C08", "C07", "C06", "C05"}, got.Symbols())
	})

	t.Run("numeric not lexical comparison", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"symbol":"SMALL","quoteVolume":"9.0"},
				{"symbol":"BIG","quoteVolume":"100000.0"},
				{"symbol":"MID","quoteVolume":"25.75"}
			]`)
		})

		got := c.FetchTopCoins(context.Background())
		assert.Equal(t, []string{"BIG", "MID", "SMALL"}, got.Symbols())
	})

	t.Run("records are returned unchanged", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"symbol":"BTCUSDT","lastPrice":"64000.01","quoteVolume":"1.5","count":1234}]`)
		})

		got := c.FetchTopCoins(context.Background())
		require.Len(t, got, 1)
		assert.Equal(t, "64000.01", got[0]["lastPrice"])
		assert.Equal(t, "1.5", got[0]["quoteVolume"])
		assert.EqualValues(t, "1234", got[0]["count"])
	})

	t.Run("empty array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})

		got := c.FetchTopCoins(context.Background())
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	failures := map[string]http.HandlerFunc{
		"http 500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `[{"symbol":"BTCUSDT","quoteVolume":"1"}]`)
		},
		"http 429": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"symbol":`)
		},
		"object instead of array": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code":-1,"msg":"nope"}`)
		},
		"array of scalars": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[1,2,3]`)
		},
	}

	for name, handler := range failures {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, handler)
			got := c.FetchTopCoins(context.Background())
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		c := NewClient(config.Map{BaseURLKey: serverURL}, upstream.WithTimeout(time.Second))
		got := c.FetchTopCoins(context.Background())
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFetchCoinDetail(t *testing.T) {
	t.Run("upper-cases symbol", func(t *testing.T) {
		var gotSymbol atomic.Value
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
			gotSymbol.Store(r.URL.Query().Get("symbol"))
			fmt.Fprint(w, `{"symbol":"BTCUSDT","lastPrice":"64000.01","quoteVolume":"123.45"}`)
		})

		ticker, ok := c.FetchCoinDetail(context.Background(), "btcusdt")

		require.True(t, ok)
		assert.Equal(t, "BTCUSDT", gotSymbol.Load())
		assert.Equal(t, "BTCUSDT", ticker.Symbol())
		assert.Equal(t, "64000.01", ticker["lastPrice"])
	})

	t.Run("empty object is present", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		})

		ticker, ok := c.FetchCoinDetail(context.Background(), "ETHUSDT")
		assert.True(t, ok)
		assert.NotNil(t, ticker)
		assert.Empty(t, ticker)
	})

	t.Run("unknown symbol is absent", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"code":-1121,"msg":"Invalid symbol."}`)
		})

		ticker, ok := c.FetchCoinDetail(context.Background(), "nope")
		assert.False(t, ok)
		assert.Nil(t, ticker)
	})

	t.Run("server error is absent", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, ok := c.FetchCoinDetail(context.Background(), "BTCUSDT")
		assert.False(t, ok)
	})

	t.Run("non-object body is absent", func(t *testing.T) {
		for _, body := range []string{`[]`, `null`, `"BTCUSDT"`, `not json`} {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})

			_, ok := c.FetchCoinDetail(context.Background(), "BTCUSDT")
			assert.False(t, ok, "body %s", body)
		}
	})
}

func TestTopByQuoteVolume(t *testing.T) {
	t.Run("missing and invalid volumes rank last", func(t *testing.T) {
		in := []model.Ticker{
			{"symbol": "NOVOL"},
			{"symbol": "A", "quoteVolume": "5"},
			{"symbol": "BAD", "quoteVolume": "n/a"},
			{"symbol": "B", "quoteVolume": "7"},
		}

		got := TopByQuoteVolume(in, 10)
		assert.Equal(t, []string{"B", "A", "NOVOL", "BAD"}, got.Symbols())
	})

	t.Run("ties keep input order", func(t *testing.T) {
		in := []model.Ticker{
			{"symbol": "X", "quoteVolume": "1.0"},
			{"symbol": "Y", "quoteVolume": "1"},
			{"symbol": "Z", "quoteVolume": "1.00"},
		}

		got := TopByQuoteVolume(in, 10)
		assert.Equal(t, []string{"X", "Y", "Z"}, got.Symbols())
	})

	t.Run("input is not modified", func(t *testing.T) {
		in := []model.Ticker{
			{"symbol": "A", "quoteVolume": "1"},
			{"symbol": "B", "quoteVolume": "2"},
		}

		TopByQuoteVolume(in, 1)
		assert.Equal(t, "A", in[0].Symbol())
		assert.Equal(t, "B", in[1].Symbol())
	})

	t.Run("limits", func(t *testing.T) {
		in := []model.Ticker{{"symbol": "A", "quoteVolume": "1"}}
		assert.Len(t, TopByQuoteVolume(in, 0), 0)
		assert.Len(t, TopByQuoteVolume(in, -3), 0)
		assert.Len(t, TopByQuoteVolume(nil, 10), 0)
	})

	t.Run("random lists stay sorted and bounded", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))

		for round := 0; round < 200; round++ {
			size := rng.IntN(40)
			in := make([]model.Ticker, size)
			for i := range in {
				// Small value range forces plenty of ties.
				in[i] = model.Ticker{
					"symbol":      fmt.Sprintf("S%d", i),
					"quoteVolume": fmt.Sprintf("%d.%d", rng.IntN(20), rng.IntN(3)),
				}
			}

			got := TopByQuoteVolume(in, model.TopCoinsLimit)

			require.LessOrEqual(t, len(got), model.TopCoinsLimit)
			require.Equal(t, min(size, model.TopCoinsLimit), len(got))

			prev := decimal.NewFromInt(1 << 62)
			for _, tk := range got {
				vol, ok := tk.QuoteVolume()
				require.True(t, ok)
				require.True(t, vol.LessThanOrEqual(prev), "round %d: %s after %s", round, vol, prev)
				prev = vol
			}
		}
	})
}
