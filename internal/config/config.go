package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration, stored as a TOML file next to the
// database under the user config directory.
type Config struct {
	DatabasePath string `toml:"database_path"`
	LogDir       string `toml:"log_dir"`
	Debug        bool   `toml:"debug"`
}

// DefaultDir returns the default config directory for the tracker app.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "tracker"), nil
}

// Default builds a configuration rooted at the given directory.
func Default(dir string) *Config {
	return &Config{
		DatabasePath: filepath.Join(dir, "tracker.db"),
		LogDir:       filepath.Join(dir, "logs"),
	}
}

// Read decodes a Config from the provided reader.
func Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes the Config to the provided writer.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config file at path. A missing file yields the defaults for
// the file's directory rather than an error, so first runs need no setup.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(filepath.Dir(path)), nil
		}
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, err
	}

	// Fill gaps left by a partial file.
	defaults := Default(filepath.Dir(path))
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaults.DatabasePath
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaults.LogDir
	}
	return cfg, nil
}

// Save writes the config file at path, creating its directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, cfg)
}
