package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://api.example")
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvLogLevel, "error")

	cfg := &Config{RedisAddr: "keep:6379", LogLevel: "info"}
	parseEnv(cfg)

	assert.Equal(t, "https://api.example", cfg.APIBaseURL)
	assert.Equal(t, "keep:6379", cfg.RedisAddr)
	assert.Equal(t, "error", cfg.LogLevel)
}
