package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigPath_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvPicoTTSConfig, "")
	t.Setenv(EnvPicoTTSHome, "")

	want := filepath.Join(home, ".picotts", "config.json")
	if got := DefaultConfigPath(); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestDefaultConfigPath_HomeOverride(t *testing.T) {
	homeOverride := filepath.Join(t.TempDir(), "tts-home")
	t.Setenv(EnvPicoTTSConfig, "")
	t.Setenv(EnvPicoTTSHome, homeOverride)

	want := filepath.Join(homeOverride, "config.json")
	if got := DefaultConfigPath(); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestDefaultConfigPath_ConfigOverrideWins(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom", "picotts.json")
	t.Setenv(EnvPicoTTSConfig, configPath)
	t.Setenv(EnvPicoTTSHome, filepath.Join(t.TempDir(), "ignored"))

	if got := DefaultConfigPath(); got != configPath {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, configPath)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"":             "",
		"~":            home,
		"~/cfg.json":   home + "/cfg.json",
		"/etc/x.json":  "/etc/x.json",
		"rel/cfg.json": "rel/cfg.json",
	}
	for in, want := range tests {
		if got := expandHome(in); got != want {
			t.Errorf("expandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
