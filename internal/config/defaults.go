package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBinanceURL      = "https://api.binance.com"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultUserAgent       = "coinfeed"
	DefaultServerPort      = 8080
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultMetricsPath     = "/metrics"
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultRecordInterval  = 5 * time.Minute
	DefaultRecordTimeout   = 30 * time.Second
)

func (c *Config) applyDefaults() {
	// Services defaults
	if c.Services.Binance.BaseURL == "" {
		c.Services.Binance.BaseURL = DefaultBinanceURL
	}

	// HTTP client defaults
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = DefaultUserAgent
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Logging defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Recorder defaults
	if c.Recorder.Interval == 0 {
		c.Recorder.Interval = DefaultRecordInterval
	}
	if c.Recorder.Timeout == 0 {
		c.Recorder.Timeout = DefaultRecordTimeout
	}
}
