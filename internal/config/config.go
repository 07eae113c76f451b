// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	General GeneralConfig `toml:"general"`
	Chart   ChartConfig   `toml:"chart"`
}

// GeneralConfig maps startup settings.
type GeneralConfig struct {
	DBPath   *string `toml:"db"`
	Weeks    *int    `toml:"weeks"`
	Employee *string `toml:"employee"`
}

// ChartConfig maps chart settings.
type ChartConfig struct {
	WeekStart *string `toml:"week-start"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath returns ~/.config/hourglass/config.toml (best effort).
func DefaultConfigPath() string {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cfg, "hourglass", "config.toml")
}

// ParseWeekStart maps "sunday"/"monday" to a weekday. Unknown values fall
// back to Sunday.
func ParseWeekStart(value string) time.Weekday {
	if strings.EqualFold(strings.TrimSpace(value), "monday") {
		return time.Monday
	}
	return time.Sunday
}
