package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "TELEGRAM_TOKEN", "TOKEN_FILE", "ENV", "TIMEZONE", "RUZ_BASE_URL",
		"HTTP_TIMEOUT", "SEARCH_CACHE_TTL", "HOMEWORK_DB_DRIVER", "HOMEWORK_DB_DSN",
		"HOMEWORK_FILES_DIR", "STATE_IDLE_TTL", "WEBHOOK_LISTEN", "WEBHOOK_URL", "BOT_WORKERS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("TOKEN_FILE", filepath.Join(t.TempDir(), "missing.txt"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.TelegramToken)
	assert.Equal(t, "https://ruz.fa.ru/api", cfg.RuzBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, DriverSQLite, cfg.HomeworkDriver)
	assert.Equal(t, "data/homework.db", cfg.HomeworkDSN)
	assert.Zero(t, cfg.StateIdleTTL)
	assert.False(t, cfg.UseWebhook())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"env: production\n"+
			"homework_db_driver: postgres\n"+
			"homework_db_dsn: postgres://localhost/hw\n"+
			"http_timeout: 5s\n"+
			"bot_workers: 2\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TELEGRAM_TOKEN", "secret")
	t.Setenv("HOMEWORK_DB_DSN", "postgres://db/hw")
	t.Setenv("STATE_IDLE_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, DriverPostgres, cfg.HomeworkDriver)
	assert.Equal(t, "postgres://db/hw", cfg.HomeworkDSN)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 2*time.Hour, cfg.StateIdleTTL)
}

func TestLoad_TokenFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "token.txt")
	require.NoError(t, os.WriteFile(path, []byte("  from-file  \nsecond line\n"), 0o600))
	t.Setenv("TOKEN_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TelegramToken)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no token", map[string]string{}},
		{"unknown driver", map[string]string{"TELEGRAM_TOKEN": "x", "HOMEWORK_DB_DRIVER": "mysql"}},
		{"bad duration", map[string]string{"TELEGRAM_TOKEN": "x", "HTTP_TIMEOUT": "soon"}},
		{"negative ttl", map[string]string{"TELEGRAM_TOKEN": "x", "STATE_IDLE_TTL": "-1m"}},
		{"zero http timeout", map[string]string{"TELEGRAM_TOKEN": "x", "HTTP_TIMEOUT": "0s"}},
		{"zero workers", map[string]string{"TELEGRAM_TOKEN": "x", "BOT_WORKERS": "0"}},
		{"webhook without url", map[string]string{"TELEGRAM_TOKEN": "x", "WEBHOOK_LISTEN": ":8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_DoesNotChangeConfig(t *testing.T) {
	cfg := Defaults()
	cfg.TelegramToken = "secret"
	cfg.Workers = -3

	require.Error(t, cfg.Validate())
	assert.Equal(t, -3, cfg.Workers)
}

func TestLocation(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())

	cfg.Timezone = "Nowhere/Unknown"
	assert.Equal(t, time.Local, cfg.Location())
}
