// Package config reads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds process-wide settings. View preferences live in package prefs.
type Config struct {
	DBPath      string
	PrefsPath   string
	LogLevel    string
	LogFile     string
	LogUseCases bool
	// DragThreshold is the minimum pointer travel, in pixels, before a drag
	// on empty timeline space creates an activity.
	DragThreshold float64
}

// DefaultConfig returns the settings used when no environment overrides are
// present. Paths live under ~/.campaignos, or the working directory when the
// home directory is unknown.
func DefaultConfig() Config {
	base := ".campaignos"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".campaignos")
	}
	return Config{
		DBPath:        filepath.Join(base, "campaignos.db"),
		PrefsPath:     defaultPrefsPath(),
		LogLevel:      "info",
		LogFile:       filepath.Join(base, "logs", "campaignos.log"),
		LogUseCases:   false,
		DragThreshold: 10,
	}
}

func defaultPrefsPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "campaignos", "prefs.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "campaignos", "prefs.yaml")
	}
	return filepath.Join(".campaignos", "prefs.yaml")
}

// LoadConfig reads CAMPAIGNOS_* environment variables over the defaults.
// Unparseable values are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CAMPAIGNOS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CAMPAIGNOS_PREFS"); v != "" {
		cfg.PrefsPath = v
	}
	if v := strings.ToLower(os.Getenv("CAMPAIGNOS_LOG_LEVEL")); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = v
		}
	}
	if v := os.Getenv("CAMPAIGNOS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("CAMPAIGNOS_LOG_USECASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("CAMPAIGNOS_DRAG_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.DragThreshold = f
		}
	}
	return cfg
}
