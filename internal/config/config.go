package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the client settings. File values come from
// ~/.soloquest/config.yaml; SOLOQUEST_* environment variables (optionally
// loaded from a .env file) override it.
type Config struct {
	// SyncURL is the base URL of the sync daemon. Empty disables sync.
	SyncURL string `yaml:"sync_url"`
	// DBPath overrides the local database location.
	DBPath string `yaml:"db_path"`
	// DebounceMS is the sync push debounce window in milliseconds.
	DebounceMS int `yaml:"debounce_ms"`
}

const defaultDebounceMS = 1000

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".soloquest", "config.yaml"), nil
}

// Load reads the config file if present and applies env overrides. A missing
// file is not an error; defaults apply.
func Load() (*Config, error) {
	// Best effort: a .env in the working directory is a convenience, not
	// a requirement.
	_ = godotenv.Load()

	cfg := &Config{DebounceMS: defaultDebounceMS}

	path, err := defaultPath()
	if err == nil {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("SOLOQUEST_SYNC_URL"); v != "" {
		cfg.SyncURL = v
	}
	if v := os.Getenv("SOLOQUEST_DB"); v != "" {
		cfg.DBPath = v
	}

	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = defaultDebounceMS
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Debounce returns the push debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
