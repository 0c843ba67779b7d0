package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bizcards/internal/flagx"
	"github.com/dmitrijs2005/bizcards/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Absent fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	StorageBackend      *string         `json:"storage_backend"`
	DatabasePath        *string         `json:"database_path"`
	RedisAddr           *string         `json:"redis_addr"`
	RedisPrefix         *string         `json:"redis_prefix"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	WatchInterval       *timex.Duration `json:"watch_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics when the
// file cannot be read or decoded, like parseFlags does for bad flags.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("read config %s: %w", path, err))
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(fmt.Errorf("parse config %s: %w", path, err))
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.WatchInterval != nil {
		cfg.WatchInterval = jc.WatchInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
