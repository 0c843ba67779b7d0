// Package config loads runtime configuration for the bizcards CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: BIZCARDS_API_URL, BIZCARDS_REDIS_ADDR, BIZCARDS_LOG_LEVEL.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   backend base URL
//	-s string   durable storage backend (sqlite|redis)
//	-d string   SQLite database path
//	-r string   Redis address
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8181",
//	  "storage_backend": "sqlite",
//	  "database_path": "bizcards.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "bizcards:",
//	  "log_level": "warn",
//	  "log_format": "text",
//	  "online_check_interval": "5s",
//	  "watch_interval": "500ms",
//	  "request_timeout": "15s"
//	}
//
// LoadConfig does not validate; call (*Config).Validate before use.
package config
