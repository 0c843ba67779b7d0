package config

import "os"

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL = "BIZCARDS_API_URL"
	EnvRedisAddr  = "BIZCARDS_REDIS_ADDR"
	EnvLogLevel   = "BIZCARDS_LOG_LEVEL"
)

// parseEnv overlays cfg with non-empty environment variables.
func parseEnv(cfg *Config) {
	for name, dst := range map[string]*string{
		EnvAPIBaseURL: &cfg.APIBaseURL,
		EnvRedisAddr:  &cfg.RedisAddr,
		EnvLogLevel:   &cfg.LogLevel,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
}
