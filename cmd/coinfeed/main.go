package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/coinfeed/internal/config"
	"github.com/rickgao/coinfeed/internal/database"
	"github.com/rickgao/coinfeed/internal/exchange"
	"github.com/rickgao/coinfeed/internal/gateway"
	"github.com/rickgao/coinfeed/internal/metrics"
	"github.com/rickgao/coinfeed/internal/recorder"
	"github.com/rickgao/coinfeed/internal/server"
	"github.com/rickgao/coinfeed/internal/upstream"
	"github.com/rickgao/coinfeed/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/coinfeed.local.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to optional .env file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := config.LoadEnvFile(*envPath); err != nil {
		slog.Error("failed to load env file", "error", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting coinfeed",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)
	logger.Info("configuration loaded",
		"binance_url", cfg.Services.Binance.BaseURL,
		"python_url", cfg.Services.Python.BaseURL,
		"recorder", cfg.Recorder.Enabled,
	)
	if cfg.Services.Python.BaseURL == "" {
		logger.Warn("services.python.base_url is not set, tool endpoints will return empty results")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	var m *metrics.Metrics
	var serverOpts []server.Option
	serverOpts = append(serverOpts, server.WithLogger(logger))
	if cfg.Metrics.Enabled {
		reg := metrics.NewRegistry()
		m = metrics.New(reg)
		serverOpts = append(serverOpts, server.WithMetrics(cfg.Metrics.Path, metrics.Handler(reg)))
	}

	upstreamOpts := []upstream.Option{
		upstream.WithLogger(logger),
		upstream.WithTimeout(cfg.HTTP.Timeout),
		upstream.WithUserAgent(version.UserAgent(cfg.HTTP.UserAgent)),
		upstream.WithMetrics(m),
	}

	coins := exchange.NewClient(cfg, upstreamOpts...)
	tools := gateway.New(cfg, upstreamOpts...)

	// Start snapshot recorder
	if cfg.Recorder.Enabled {
		stop, err := startRecorder(ctx, cfg, coins, m, logger)
		if err != nil {
			logger.Error("failed to start snapshot recorder", "error", err)
			os.Exit(1)
		}
		defer stop()
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.New(coins, tools, serverOpts...).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting http server", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}

	logger.Info("coinfeed stopped")
}

// startRecorder connects to Postgres and starts the recorder. The returned
// func stops the recorder and closes the pool.
func startRecorder(ctx context.Context, cfg *config.Config, coins *exchange.Client, m *metrics.Metrics, logger *slog.Logger) (func(), error) {
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	store := recorder.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	rec := recorder.New(recorder.Config{
		Interval: cfg.Recorder.Interval,
		Timeout:  cfg.Recorder.Timeout,
	}, coins, store, m, logger)

	if err := rec.Start(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("start recorder: %w", err)
	}

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := rec.Stop(stopCtx); err != nil {
			logger.Warn("snapshot recorder stop", "error", err)
		}
		pool.Close()
	}, nil
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
