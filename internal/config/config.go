// Package config loads application settings from ~/.rotina/config.yaml
// and ROTINA_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store  StoreConfig
	Remote RemoteConfig
	Sync   SyncConfig
}

// StoreConfig selects and locates the local store backend.
type StoreConfig struct {
	// Backend is "diskv" or "sqlite".
	Backend string
	Path    string
}

// RemoteConfig points at the cloud backend.
type RemoteConfig struct {
	Endpoint string
	Email    string
}

// SyncConfig tunes the sync session.
type SyncConfig struct {
	DebounceMs int    `mapstructure:"debounce_ms"`
	LogPath    string `mapstructure:"log_path"`
}

// Debounce returns the configured push debounce window.
func (c SyncConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Dir returns the application's home directory, ~/.rotina by default.
func Dir() string {
	if d := os.Getenv("ROTINA_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rotina"
	}
	return filepath.Join(home, ".rotina")
}

// Load reads configuration from file and env. Env var overrides use
// prefix ROTINA_, e.g. ROTINA_REMOTE_ENDPOINT.
func Load() (Config, error) {
	v := viper.New()

	dir := Dir()
	v.SetDefault("store.backend", "diskv")
	v.SetDefault("store.path", "")
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.email", "")
	v.SetDefault("sync.debounce_ms", 2000)
	v.SetDefault("sync.log_path", filepath.Join(dir, "sync.log"))

	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetConfigName("config")

	v.SetEnvPrefix("ROTINA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional; defaults and env cover a fresh install.
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Store.Path == "" {
		if c.Store.Backend == "sqlite" {
			c.Store.Path = filepath.Join(dir, "rotina.db")
		} else {
			c.Store.Path = filepath.Join(dir, "data")
		}
	}
	return c, nil
}
