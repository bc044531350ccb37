package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.TelegramAPIToken)
	assert.Equal(t, "./db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:12525", cfg.BindAddr)
	assert.Equal(t, 2*time.Second, cfg.RestartDelay)
	assert.Equal(t, int64(50*1024*1024), cfg.MediaSizeCeiling)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "test-token")
	t.Setenv("CHATVAULT_DB_PATH", "/data/chatvault")
	t.Setenv("CHATVAULT_BIND_ADDR", "127.0.0.1:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/chatvault", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.BindAddr)
}
