// Package config loads runtime configuration for the tokenkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the token authority gRPC endpoint
//	-t int      request timeout (seconds)
//	-b string   cache backend: sqlite, redis or memory
//	-d string   SQLite database file
//	-r string   Redis address
//	-x          derive token expiry from the access token
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "cache_backend": "redis",
//	  "cache_dsn": "tokenkeeper.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "tokenkeeper:",
//	  "derive_expiry": true,
//	  "log_level": "info",
//	  "log_format": "json"
//	}
package config
