package config

import (
	"fmt"
	"net/url"
	"time"
)

// Storage backends for the durable session area.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds runtime settings for the bizcards CLI.
//
// Fields:
//   - APIBaseURL: base URL of the card directory REST backend.
//   - StorageBackend: durable area implementation, "sqlite" or "redis".
//   - DatabasePath: SQLite file shared by every client process of one user.
//   - RedisAddr, RedisPrefix: Redis endpoint and key prefix of the durable area.
//   - OnlineCheckInterval: how often the client checks backend reachability.
//   - WatchInterval: how often the SQLite change feed polls for writes made by
//     other processes.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel, LogFormat: slog level name and handler ("text" or "json").
type Config struct {
	APIBaseURL          string
	StorageBackend      string
	DatabasePath        string
	RedisAddr           string
	RedisPrefix         string
	LogLevel            string
	LogFormat           string
	OnlineCheckInterval time.Duration
	WatchInterval       time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8181"
	c.StorageBackend = StorageSQLite
	c.DatabasePath = "bizcards.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "bizcards:"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.OnlineCheckInterval = 5 * time.Second
	c.WatchInterval = 500 * time.Millisecond
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}

	if c.OnlineCheckInterval <= 0 || c.WatchInterval <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("intervals and timeouts must be positive")
	}
	return nil
}
