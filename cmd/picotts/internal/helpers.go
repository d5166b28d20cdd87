package internal

import (
	"fmt"
	"runtime"

	"github.com/sipeed/picotts/pkg/config"
	"github.com/sipeed/picotts/pkg/logger"
	"github.com/sipeed/picotts/pkg/redaction"
)

const Logo = "🎙️"

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

// ConfigPath is bound to the root --config flag.
var ConfigPath string

func GetConfigPath() string {
	if ConfigPath != "" {
		return ConfigPath
	}
	return config.DefaultConfigPath()
}

func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(GetConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// SetupLogging applies the log section of cfg. debug forces DEBUG level.
func SetupLogging(cfg *config.Config, debug bool) error {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if debug {
		level = logger.DEBUG
	}
	logger.SetLevel(level)

	rc := redaction.DefaultConfig()
	rc.Enabled = cfg.Log.Redaction
	rc.Secrets = cfg.Secrets()
	redaction.SetGlobalConfig(rc)
	logger.SetRedactionEnabled(cfg.Log.Redaction)

	if cfg.Log.File != "" {
		if err := logger.EnableFileLogging(cfg.Log.File); err != nil {
			return err
		}
	}
	return nil
}

// FormatVersion returns the version string with optional git commit
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// FormatBuildInfo returns build time and go version info
func FormatBuildInfo() (string, string) {
	build := buildTime
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	return build, goVer
}

func GetVersion() string {
	return version
}
