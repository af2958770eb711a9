package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/coinfeed/internal/metrics"
	"github.com/rickgao/coinfeed/internal/model"
)

// TopCoinsSource provides the ranked ticker list.
type TopCoinsSource interface {
	FetchTopCoins(ctx context.Context) model.TickerList
}

// SnapshotHandler receives recorded snapshots.
type SnapshotHandler interface {
	HandleSnapshot(ctx context.Context, snapshot model.TickerSnapshot) error
}

// SnapshotHandlerFunc is a function adapter for SnapshotHandler.
type SnapshotHandlerFunc func(context.Context, model.TickerSnapshot) error

func (f SnapshotHandlerFunc) HandleSnapshot(ctx context.Context, s model.TickerSnapshot) error {
	return f(ctx, s)
}

// Config holds recorder configuration.
type Config struct {
	Interval time.Duration // Record interval (default: 5m)
	Timeout  time.Duration // Per-cycle timeout covering fetch and store (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Minute,
		Timeout:  30 * time.Second,
	}
}

// Recorder periodically records the top coins list.
type Recorder struct {
	cfg     Config
	source  TopCoinsSource
	handler SnapshotHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Recorder. m may be nil.
func New(cfg Config, source TopCoinsSource, handler SnapshotHandler, m *metrics.Metrics, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		cfg:     cfg,
		source:  source,
		handler: handler,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Start begins the recording loop.
func (r *Recorder) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("snapshot recorder started", "interval", r.cfg.Interval)

	return nil
}

// Stop gracefully shuts down the recorder.
func (r *Recorder) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("snapshot recorder stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main recording loop.
func (r *Recorder) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// Record immediately on start.
	r.recordOnce()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.recordOnce()
		}
	}
}

// recordOnce fetches the list and hands it to the handler.
// It reports whether a snapshot was stored.
func (r *Recorder) recordOnce() bool {
	ctx, cancel := context.WithTimeout(r.ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()

	tickers := r.source.FetchTopCoins(ctx)
	if len(tickers) == 0 {
		r.logger.Warn("top coins unavailable, skipping snapshot")
		return false
	}

	snapshot := model.NewTickerSnapshot(tickers, r.now())

	if r.handler != nil {
		if err := r.handler.HandleSnapshot(ctx, snapshot); err != nil {
			r.metrics.SnapshotFailed()
			r.logger.Warn("failed to store snapshot",
				"snapshot_id", snapshot.ID,
				"err", err,
			)
			return false
		}
	}

	r.metrics.SnapshotRecorded()
	r.logger.Info("snapshot recorded",
		"snapshot_id", snapshot.ID,
		"tickers", len(tickers),
		"top", tickers[0].Symbol(),
		"duration", time.Since(start),
	)
	return true
}
