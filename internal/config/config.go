package config

import "time"

// Config is the root configuration for a coinfeed instance.
type Config struct {
	Services ServicesConfig `yaml:"services"`
	HTTP     HTTPConfig     `yaml:"http"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Database DBConfig       `yaml:"database"`
	Recorder RecorderConfig `yaml:"recorder"`

	// raw is the decoded YAML tree backing Lookup.
	raw map[string]any
}

// ServicesConfig holds upstream service locations.
type ServicesConfig struct {
	Binance BinanceConfig `yaml:"binance"`
	Python  PythonConfig  `yaml:"python"`
}

// BinanceConfig holds the exchange REST settings.
type BinanceConfig struct {
	BaseURL string `yaml:"base_url"`
}

// PythonConfig holds the internal tool service endpoints.
type PythonConfig struct {
	BaseURL      string `yaml:"base_url"`
	DouyinPath   string `yaml:"douyin_path"`
	CaptionPath  string `yaml:"caption_path"`
	TrendingPath string `yaml:"trending_path"`
}

// HTTPConfig holds outbound HTTP client settings.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// ServerConfig holds the inbound API server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig holds slog handler settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DBConfig holds the Postgres connection used by the snapshot recorder.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RecorderConfig holds top-coins snapshot recorder settings.
type RecorderConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}
