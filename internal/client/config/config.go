package config

import "time"

// Cache backends understood by the CLI.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime settings for the tokenkeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the token authority gRPC endpoint.
//   - RequestTimeout: deadline applied to every authority call.
//   - CacheBackend: where the auth record lives (sqlite, redis or memory).
//   - CacheDSN: SQLite file for the sqlite backend.
//   - RedisAddr, RedisPrefix: connection and key namespace for the redis backend.
//   - DeriveExpiry: fill a missing expiry from the access token's exp claim.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	CacheBackend       string
	CacheDSN           string
	RedisAddr          string
	RedisPrefix        string
	DeriveExpiry       bool
	LogLevel           string
	LogFormat          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.CacheBackend = BackendSQLite
	c.CacheDSN = "tokenkeeper.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "tokenkeeper:"
	c.DeriveExpiry = false
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
