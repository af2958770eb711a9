package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/rickgao/coinfeed/internal/config"
	"github.com/rickgao/coinfeed/internal/exchange"
	"github.com/rickgao/coinfeed/internal/gateway"
	"github.com/rickgao/coinfeed/internal/upstream"
)

func main() {
	configPath := flag.String("config", "", "optional config file (public Binance API is used otherwise)")
	symbol := flag.String("symbol", "btcusdt", "symbol for the detail lookup")
	tools := flag.Bool("tools", false, "also call the python tool service")
	flag.Parse()

	var cfg config.Lookup = config.Map{}
	if *configPath != "" {
		loaded, err := config.LoadWithDefaults(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts := []upstream.Option{
		upstream.WithTimeout(30 * time.Second),
		upstream.WithLogger(logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := exchange.NewClient(cfg, opts...)

	// Test 1: Top coins
	fmt.Printf("=== Testing FetchTopCoins (%s) ===\n", client.BaseURL())
	top := client.FetchTopCoins(ctx)
	if len(top) == 0 {
		log.Fatalf("FetchTopCoins returned no coins")
	}
	for i, t := range top {
		qv, _ := t.QuoteVolume()
		fmt.Printf("  %2d. %-12s quoteVolume=%s\n", i+1, t.Symbol(), qv.StringFixed(2))
	}

	// Test 2: Single coin
	fmt.Printf("\n=== Testing FetchCoinDetail (%s) ===\n", *symbol)
	detail, ok := client.FetchCoinDetail(ctx, *symbol)
	if !ok {
		log.Fatalf("FetchCoinDetail(%q) returned nothing", *symbol)
	}
	fmt.Printf("Symbol: %s\n", detail.Symbol())
	fmt.Printf("Last price: %v\n", detail["lastPrice"])
	fmt.Printf("Change: %v%%\n", detail["priceChangePercent"])

	if !*tools {
		fmt.Println("\n=== All tests passed ===")
		return
	}

	// Test 3: Tool service
	gw := gateway.New(cfg, opts...)
	calls := []struct {
		name string
		fn   func(context.Context) map[string]any
	}{
		{"DownloadVideo", func(ctx context.Context) map[string]any { return gw.DownloadVideo(ctx) }},
		{"GenerateCaption", func(ctx context.Context) map[string]any { return gw.GenerateCaption(ctx) }},
		{"TrendingKeywords", func(ctx context.Context) map[string]any { return gw.TrendingKeywords(ctx) }},
	}
	for _, c := range calls {
		fmt.Printf("\n=== Testing %s (%s) ===\n", c.name, gw.BaseURL())
		res := c.fn(ctx)
		fmt.Printf("Keys: %d\n", len(res))
		for k, v := range res {
			fmt.Printf("  %s: %v\n", k, v)
		}
	}

	fmt.Println("\n=== All tests passed ===")
}
