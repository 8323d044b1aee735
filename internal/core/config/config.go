package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/parley-chat/parley/internal/core/export"
)

const defaultListLimit = 50

// Config carries the user-tunable settings for the store and its
// surfaces. Missing files fall back to defaults; Load never fails hard.
type Config struct {
	DatabasePath   string
	ListLimit      int
	ExportTemplate string
}

type tomlConfig struct {
	DatabasePath string `toml:"database_path"`
	ListLimit    int    `toml:"list_limit"`
}

// Load reads config from ~/.config/parley/
func Load() (*Config, error) {
	cfg := &Config{
		ListLimit:      defaultListLimit,
		ExportTemplate: export.DefaultTemplate,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		cfg.DatabasePath = "parley.db"
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "parley")
	cfg.DatabasePath = filepath.Join(configDir, "parley.db")

	tomlPath := filepath.Join(configDir, "config.toml")
	templatePath := filepath.Join(configDir, "export_template.txt")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.DatabasePath != "" {
				cfg.DatabasePath = tc.DatabasePath
			}
			if tc.ListLimit > 0 {
				cfg.ListLimit = tc.ListLimit
			}
		}
	}

	// If custom export template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ExportTemplate = string(data)
	}

	return cfg, nil
}
