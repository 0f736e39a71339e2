package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.Equal(t, "https://query1.finance.yahoo.com/v8/finance/chart", cfg.Yahoo.BaseURL)
	assert.Equal(t, 10, cfg.Market.SymbolTimeoutSeconds)
	assert.Equal(t, "google/gemini-3-flash-preview", cfg.Gateway.Model)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen_addr: ":9090"
cache:
  ttl_seconds: 60
gateway:
  api_key: from-file
`), 0o644))
	t.Setenv("GATEWAY_API_KEY", "from-env")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, "from-env", cfg.Gateway.APIKey)
}

func TestValidateRejectsBadTTL(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Cache.TTLSeconds = -1

	assert.Error(t, cfg.Validate())
}
