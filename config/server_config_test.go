package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg := LoadServerConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./public", cfg.StaticDir)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("READ_TIMEOUT", "30s")
	t.Setenv("WRITE_TIMEOUT", "nonsense")

	cfg := LoadServerConfig()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout, "bad durations fall back to the default")
}
