package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "fmp", cfg.DataSource.Provider)
	assert.Equal(t, "AAPL", cfg.DataSource.Symbol)
	assert.Equal(t, 30, cfg.DataSource.HistoryDays)
	assert.Equal(t, uint32(3), cfg.Breaker.MaxFailures)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.DigestCron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Server.CORS)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 3s
  cors: false
data_source:
  provider: yahoo
  symbol: MSFT
  history_days: 60
log:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Server.CORS)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "MSFT", cfg.DataSource.Symbol)
	assert.Equal(t, 60, cfg.DataSource.HistoryDays)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2.0, cfg.DataSource.RequestsPerSecond)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FMP_API_KEY", "secret")
	t.Setenv("CHARTPULSE_SYMBOL", "TSLA")
	t.Setenv("PORT", "7000")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(writeConfig(t, "data_source:\n  symbol: MSFT\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.DataSource.APIKey)
	assert.Equal(t, "TSLA", cfg.DataSource.Symbol)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"fmp without key", func(c *Config) {}, true},
		{"fmp with key", func(c *Config) { c.DataSource.APIKey = "k" }, false},
		{"yahoo needs no key", func(c *Config) { c.DataSource.Provider = "yahoo" }, false},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, true},
		{"history too short", func(c *Config) { c.DataSource.Provider = "mock"; c.DataSource.HistoryDays = 1 }, true},
		{"token without chat", func(c *Config) { c.DataSource.Provider = "mock"; c.Telegram.BotToken = "t" }, true},
		{"bad log level", func(c *Config) { c.DataSource.Provider = "mock"; c.Log.Level = "trace" }, true},
		{"bad port", func(c *Config) { c.DataSource.Provider = "mock"; c.Server.Port = 0 }, true},
		{"zero breaker timeout", func(c *Config) { c.DataSource.Provider = "mock"; c.Breaker.OpenTimeout = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
