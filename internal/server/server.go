package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/coinfeed/internal/model"
	"github.com/rickgao/coinfeed/internal/version"
)

// CoinAPI provides exchange ticker data.
type CoinAPI interface {
	FetchTopCoins(ctx context.Context) model.TickerList
	FetchCoinDetail(ctx context.Context, symbol string) (model.Ticker, bool)
}

// ToolService provides the tool service endpoints.
type ToolService interface {
	DownloadVideo(ctx context.Context) model.GatewayResult
	GenerateCaption(ctx context.Context) model.GatewayResult
	TrendingKeywords(ctx context.Context) model.GatewayResult
}

// Server wires HTTP routes to the coin and tool components.
type Server struct {
	coins  CoinAPI
	tools  ToolService
	logger *slog.Logger

	metricsPath    string
	metricsHandler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts a metrics handler at path.
func WithMetrics(path string, h http.Handler) Option {
	return func(s *Server) {
		s.metricsPath = path
		s.metricsHandler = h
	}
}

// New creates a Server.
func New(coins CoinAPI, tools ToolService, opts ...Option) *Server {
	s := &Server{
		coins:  coins,
		tools:  tools,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/coins/top", s.handleTopCoins)
	mux.HandleFunc("GET /api/coins/{symbol}", s.handleCoinDetail)
	mux.HandleFunc("GET /api/tools/douyin", s.toolHandler(s.tools.DownloadVideo))
	mux.HandleFunc("GET /api/tools/caption", s.toolHandler(s.tools.GenerateCaption))
	mux.HandleFunc("GET /api/tools/trending", s.toolHandler(s.tools.TrendingKeywords))

	if s.metricsHandler != nil {
		mux.Handle("GET "+s.metricsPath, s.metricsHandler)
	}

	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit,
	})
}

func (s *Server) handleTopCoins(w http.ResponseWriter, r *http.Request) {
	coins := s.coins.FetchTopCoins(r.Context())
	if coins == nil {
		coins = model.TickerList{}
	}
	writeJSON(w, http.StatusOK, coins)
}

func (s *Server) handleCoinDetail(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.coins.FetchCoinDetail(r.Context(), r.PathValue("symbol"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "coin not found"})
		return
	}
	if ticker == nil {
		ticker = model.Ticker{}
	}
	writeJSON(w, http.StatusOK, ticker)
}

func (s *Server) toolHandler(call func(context.Context) model.GatewayResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := call(r.Context())
		if result == nil {
			result = model.GatewayResult{}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
