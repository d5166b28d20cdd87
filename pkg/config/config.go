package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sipeed/picotts/pkg/elevenlabs"
	"github.com/sipeed/picotts/pkg/picker"
)

var (
	ErrMissingTelegramToken = errors.New("telegram bot token is not set (TELEGRAM_BOT_TOKEN)")
	ErrMissingElevenLabsKey = errors.New("elevenlabs api key is not set (ELEVENLABS_API_KEY)")
)

// FlexibleStringSlice is a []string that also accepts JSON numbers,
// so allow_from can contain both "123" and 123.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

type Config struct {
	Telegram   TelegramConfig   `json:"telegram"`
	ElevenLabs ElevenLabsConfig `json:"elevenlabs"`
	Bot        BotConfig        `json:"bot"`
	Metrics    MetricsConfig    `json:"metrics"`
	Log        LogConfig        `json:"log"`
}

type TelegramConfig struct {
	Token                string              `json:"token" env:"TELEGRAM_BOT_TOKEN"`
	Proxy                string              `json:"proxy" env:"PICOTTS_TELEGRAM_PROXY"`
	AllowFrom            FlexibleStringSlice `json:"allow_from" env:"PICOTTS_TELEGRAM_ALLOW_FROM"`
	MaxConcurrentUpdates int                 `json:"max_concurrent_updates" env:"PICOTTS_TELEGRAM_MAX_CONCURRENT_UPDATES"`
}

type ElevenLabsConfig struct {
	APIKey         string `json:"api_key" env:"ELEVENLABS_API_KEY"`
	BaseURL        string `json:"base_url" env:"PICOTTS_ELEVENLABS_BASE_URL"`
	DefaultVoiceID string `json:"default_voice_id" env:"DEFAULT_ELEVENLABS_VOICE_ID"`
}

type BotConfig struct {
	// VoicePicker selects the per-user voice picker variant.
	VoicePicker bool `json:"voice_picker" env:"PICOTTS_BOT_VOICE_PICKER"`
	PickerLimit int  `json:"picker_limit" env:"PICOTTS_BOT_PICKER_LIMIT"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"PICOTTS_METRICS_ENABLED"`
	Addr    string `json:"addr" env:"PICOTTS_METRICS_ADDR"`
}

type LogConfig struct {
	Level     string `json:"level" env:"PICOTTS_LOG_LEVEL"`
	File      string `json:"file" env:"PICOTTS_LOG_FILE"`
	Redaction bool   `json:"redaction" env:"PICOTTS_LOG_REDACTION"`
}

func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			AllowFrom:            FlexibleStringSlice{},
			MaxConcurrentUpdates: 16,
		},
		ElevenLabs: ElevenLabsConfig{
			BaseURL:        elevenlabs.DefaultBaseURL,
			DefaultVoiceID: elevenlabs.DefaultVoiceID,
		},
		Bot: BotConfig{
			VoicePicker: true,
			PickerLimit: picker.DefaultLimit,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Log: LogConfig{
			Level:     "info",
			Redaction: true,
		},
	}
}

// LoadConfig builds a Config from defaults, the optional .env files, the
// optional JSON file at path and finally the process environment. A missing
// file at path is not an error.
func LoadConfig(path string, dotenvFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadDotEnv(dotenvFiles...); err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from the given files, ".env" when none are
// named. Variables already in the environment win. Missing files are skipped.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate reports configuration that prevents startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return ErrMissingTelegramToken
	}
	if !c.Bot.VoicePicker && strings.TrimSpace(c.ElevenLabs.APIKey) == "" {
		return ErrMissingElevenLabsKey
	}
	if strings.TrimSpace(c.ElevenLabs.DefaultVoiceID) == "" {
		return errors.New("elevenlabs.default_voice_id must not be empty")
	}
	if c.Telegram.MaxConcurrentUpdates <= 0 {
		return fmt.Errorf("telegram.max_concurrent_updates must be positive, got %d", c.Telegram.MaxConcurrentUpdates)
	}
	return nil
}

// Degraded reports a picker-variant start without an ElevenLabs key. The
// bot runs but every provider-backed reply is an admin notice.
func (c *Config) Degraded() bool {
	return c.Bot.VoicePicker && strings.TrimSpace(c.ElevenLabs.APIKey) == ""
}

// Secrets lists the configured credentials for log redaction.
func (c *Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.Telegram.Token, c.ElevenLabs.APIKey} {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
