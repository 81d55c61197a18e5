package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the CLI's YAML configuration file. Every field has a usable
// default so the tool works with no file at all.
type Config struct {
	// Server is the admin API base URL.
	Server string `yaml:"server"`
	// StateDir holds per-user state such as persisted sort orders.
	StateDir string `yaml:"state_dir"`
	// PageSize is the default listing page size.
	PageSize int `yaml:"page_size"`
	// User is reported to the server for audit rows.
	User string `yaml:"user"`
}

func defaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Server:   "http://localhost:8080",
		StateDir: filepath.Join(home, ".loyadm"),
		PageSize: 25,
		User:     "admin",
	}
}

// LoadConfig reads the YAML file at path, or the default location when path
// is empty. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".loyadm", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 25
	}
	if cfg.StateDir == "" {
		cfg.StateDir = defaultConfig().StateDir
	}
	return cfg, nil
}

// SortStatePath is the file the sort preference store writes to.
func (c Config) SortStatePath() string {
	return filepath.Join(c.StateDir, "sort.json")
}
