package internal

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipeed/picotts/pkg/config"
	"github.com/sipeed/picotts/pkg/logger"
	"github.com/sipeed/picotts/pkg/redaction"
)

func TestGetConfigPath(t *testing.T) {
	t.Setenv("HOME", "/tmp/home")
	t.Setenv(config.EnvPicoTTSConfig, "")
	t.Setenv(config.EnvPicoTTSHome, "")

	assert.Equal(t, filepath.Join("/tmp/home", ".picotts", "config.json"), GetConfigPath())
}

func TestGetConfigPath_FlagWins(t *testing.T) {
	old := ConfigPath
	t.Cleanup(func() { ConfigPath = old })

	ConfigPath = "/etc/picotts.json"

	assert.Equal(t, "/etc/picotts.json", GetConfigPath())
}

func TestFormatVersion(t *testing.T) {
	oldVersion, oldGit := version, gitCommit
	t.Cleanup(func() {
		version, gitCommit = oldVersion, oldGit
	})

	version, gitCommit = "1.2.3", ""
	assert.Equal(t, "1.2.3", FormatVersion())

	gitCommit = "abc123"
	assert.Equal(t, "1.2.3 (git: abc123)", FormatVersion())
}

func TestFormatBuildInfo_FallsBackToRuntimeVersion(t *testing.T) {
	oldBuild, oldGo := buildTime, goVersion
	t.Cleanup(func() {
		buildTime, goVersion = oldBuild, oldGo
	})

	buildTime, goVersion = "2026-01-01T00:00:00Z", ""

	build, goVer := FormatBuildInfo()
	assert.Equal(t, "2026-01-01T00:00:00Z", build)
	assert.Equal(t, runtime.Version(), goVer)
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		logger.SetLevel(logger.INFO)
		logger.DisableFileLogging()
		logger.SetRedactionEnabled(true)
		redaction.SetGlobalConfig(redaction.DefaultConfig())
	})

	cfg := config.DefaultConfig()
	cfg.Telegram.Token = "plain-secret-token"
	cfg.Log.Level = "warn"
	cfg.Log.File = filepath.Join(t.TempDir(), "picotts.log")

	require.NoError(t, SetupLogging(cfg, false))
	assert.Equal(t, logger.WARN, logger.GetLevel())
	assert.Equal(t, "token is [REDACTED]", redaction.Redact("token is plain-secret-token"))

	logger.WarnC("cli", "written")
	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")

	require.NoError(t, SetupLogging(cfg, true))
	assert.Equal(t, logger.DEBUG, logger.GetLevel())
}

func TestSetupLogging_BadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "loud"

	assert.Error(t, SetupLogging(cfg, false))
}
