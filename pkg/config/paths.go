package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvPicoTTSConfig = "PICOTTS_CONFIG"
	EnvPicoTTSHome   = "PICOTTS_HOME"
)

// DefaultConfigPath resolves the config file location: $PICOTTS_CONFIG, then
// $PICOTTS_HOME/config.json, then ~/.picotts/config.json.
func DefaultConfigPath() string {
	if configPath := expandHome(strings.TrimSpace(os.Getenv(EnvPicoTTSConfig))); configPath != "" {
		return configPath
	}

	homeDir := expandHome(strings.TrimSpace(os.Getenv(EnvPicoTTSHome)))
	if homeDir == "" {
		homeDir = defaultPicoTTSHome()
	}
	return filepath.Join(homeDir, "config.json")
}

func defaultPicoTTSHome() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".picotts"
	}
	return filepath.Join(home, ".picotts")
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	if len(path) > 1 && path[1] == '/' {
		return home + path[1:]
	}
	return home
}
