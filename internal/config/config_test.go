package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:8000")
	t.Setenv("BOT_TOKEN", "token")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, "America/Adak", cfg.Timezone)
	assert.Equal(t, "tasktracker.db", cfg.CacheDB)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadRequiresAPIURLAndToken(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("BOT_TOKEN", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_URL")

	t.Setenv("API_URL", "http://localhost:8000")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_url: http://api.example\n"+
			"bot_token: secret\n"+
			"timezone: Europe/Moscow\n"+
			"digest_time: \"09:00\"\n"+
			"http_timeout: 5s\n"+
			"log_level: DEBUG\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.example", cfg.APIURL)
	assert.Equal(t, "09:00", cfg.DigestTime)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:8000")
	t.Setenv("BOT_TOKEN", "token")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.BotToken)
}

func TestLocationRejectsUnknownTimezone(t *testing.T) {
	cfg := Config{Timezone: "Mars/Olympus"}
	_, err := cfg.Location()
	require.Error(t, err)
}
