// Package config reads the popup host's settings from config.toml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Settings struct {
		// Backend is "sqlite" or "keyring".
		Backend string `mapstructure:"backend"`
	} `mapstructure:"settings"`

	Trello struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"trello"`

	Browser struct {
		DevToolsURL string        `mapstructure:"devtools_url"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"browser"`

	Popup struct {
		Debug            bool          `mapstructure:"debug"`
		StatusClearAfter time.Duration `mapstructure:"status_clear_after"`
	} `mapstructure:"popup"`
}

const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.path", "bookmarks.db")
	v.SetDefault("settings.backend", BackendSQLite)
	v.SetDefault("trello.base_url", "https://api.trello.com")
	v.SetDefault("trello.timeout", "15s")
	v.SetDefault("browser.devtools_url", "http://127.0.0.1:9222")
	v.SetDefault("browser.timeout", "5s")
	v.SetDefault("popup.debug", true)
	v.SetDefault("popup.status_clear_after", "5s")
}

// Load reads config.toml from the given directories. A missing file is not
// an error; defaults and BOOKMARK_* environment variables still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("BOOKMARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	switch cfg.Settings.Backend {
	case BackendSQLite, BackendKeyring:
	default:
		return nil, fmt.Errorf("settings.backend must be %q or %q, got %q", BackendSQLite, BackendKeyring, cfg.Settings.Backend)
	}

	return &cfg, nil
}
