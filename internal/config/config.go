package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config keeps runtime settings for the bot.
type Config struct {
	APIURL      string        `yaml:"api_url" env:"API_URL"`
	BotToken    string        `yaml:"bot_token" env:"BOT_TOKEN"`
	Timezone    string        `yaml:"timezone" env:"TIMEZONE" env-default:"America/Adak"`
	CacheDB     string        `yaml:"cache_db" env:"CACHE_DB" env-default:"tasktracker.db"`
	DigestTime  string        `yaml:"digest_time" env:"DIGEST_TIME"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	LogLevel    string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
}

// Load reads configuration from a yaml file when path is non-empty,
// falling back to environment variables otherwise.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return cfg, fmt.Errorf("read env: %w", err)
			}
			return cfg, cfg.validate()
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("API_URL is required")
	}
	if strings.TrimSpace(c.BotToken) == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	return nil
}

// Location resolves the configured IANA timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToUpper(strings.TrimSpace(c.LogLevel)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
