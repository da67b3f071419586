// Package config loads aolachart configuration with the precedence
// flags > environment > config file > defaults. The file is TOML at
// ~/.config/aolachart/config.toml (or $XDG_CONFIG_HOME/aolachart/config.toml);
// environment variables use the AOLACHART_ prefix.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const appName = "aolachart"

// defaultIconBaseURL is the public icon origin used when no override is
// configured.
const defaultIconBaseURL = "https://aola.100bt.com/h5/petattribute"

// Config holds all tunables. Zero values are filled by Default.
type Config struct {
	// APIBaseURL is the data API base (scheme optional; http:// is assumed).
	APIBaseURL string `toml:"api_base_url" env:"API_URL"`

	// IconBaseURL is the icon origin base URL.
	IconBaseURL string `toml:"icon_base_url" env:"ICON_URL"`

	// CacheDir holds cached API responses.
	CacheDir string `toml:"cache_dir" env:"CACHE_DIR"`

	// IconDir holds the persistent icon files, one "<id>.png" per display id.
	IconDir string `toml:"icon_dir" env:"ICON_DIR"`

	// Addr is the serve-mode listen address.
	Addr string `toml:"addr" env:"ADDR"`

	// CacheBackend selects the API response cache: file, memory, redis, none.
	CacheBackend string `toml:"cache_backend" env:"CACHE_BACKEND"`

	// RedisAddr is the redis host:port when CacheBackend is "redis".
	RedisAddr string `toml:"redis_addr" env:"REDIS_ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	cacheDir := defaultCacheDir()
	return Config{
		IconBaseURL:  defaultIconBaseURL,
		CacheDir:     cacheDir,
		IconDir:      filepath.Join(cacheDir, "icons"),
		Addr:         ":8080",
		CacheBackend: "file",
	}
}

// Load reads the config file at path (or the default location when path is
// empty), then applies environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AOLACHART_"}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns the default config file location, or "" when no home
// directory can be determined.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

func defaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, ".cache", appName)
}
