package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/goalbot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
trading:
  test_mode: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Trading.MinMinute)
	assert.Equal(t, 60, cfg.Trading.MaxMinute)
	assert.Equal(t, 71, cfg.Trading.CashoutMinute)
	assert.Equal(t, 50.0, cfg.Trading.MaxPrice)
	assert.Equal(t, 2.0, cfg.Trading.MinBackStake)
	assert.Equal(t, "goalbot.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Trading.TestMode)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
feed:
  countries: ["England", "Spain"]
trading:
  min_minute: 30
  max_minute: 55
  cashout_minute: 75
  stake: 10.0
storage:
  dsn: ":memory:"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"England", "Spain"}, cfg.Feed.Countries)
	assert.Equal(t, 30, cfg.Trading.MinMinute)
	assert.Equal(t, 55, cfg.Trading.MaxMinute)
	assert.Equal(t, 75, cfg.Trading.CashoutMinute)
	assert.Equal(t, 10.0, cfg.Trading.Stake)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
}

func TestLoadSecretsFromEnv(t *testing.T) {
	t.Setenv("AF_API_KEY", "feed-key")
	t.Setenv("BF_APP_KEY", "app-key")
	t.Setenv("BF_USERNAME", "user")
	t.Setenv("BF_PASSWORD", "pass")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "feed-key", cfg.Secrets.FeedAPIKey)
	assert.Equal(t, "app-key", cfg.Secrets.ExchangeAppKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.ValidateSecrets())
}

func TestValidateSecretsMissing(t *testing.T) {
	t.Setenv("AF_API_KEY", "")
	t.Setenv("BF_APP_KEY", "")

	cfg, err := config.Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Error(t, cfg.ValidateSecrets())
}

func TestValidateSecretsTelegram(t *testing.T) {
	t.Setenv("AF_API_KEY", "feed-key")
	t.Setenv("BF_APP_KEY", "app-key")
	t.Setenv("BF_USERNAME", "user")
	t.Setenv("BF_PASSWORD", "pass")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := config.Load(writeConfig(t, `
notify:
  telegram_enabled: true
`))
	require.NoError(t, err)

	// telegram activado sin credenciales
	assert.Error(t, cfg.ValidateSecrets())
}
