package upstream

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/coinfeed/internal/metrics"
)

// Client issues GET requests against one upstream service.
type Client struct {
	service    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a client for the named service. The name labels metrics
// and log records.
func NewClient(service string, opts ...Option) *Client {
	c := &Client{
		service:   service,
		userAgent: "coinfeed",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Service returns the service name.
func (c *Client) Service() string {
	return c.service
}

// Logger returns the client's logger with the service attribute attached.
func (c *Client) Logger() *slog.Logger {
	return c.logger.With("service", c.service)
}
