// Package redaction masks credentials before they reach a log line.
// It knows the shapes of Telegram bot tokens and ElevenLabs API keys as well
// as generic key/token assignments.
package redaction

import (
	"regexp"
	"strings"
	"sync"
)

// Config holds redaction configuration.
type Config struct {
	// Enabled controls whether redaction is active.
	Enabled bool `json:"enabled"`

	// Secrets are literal values (configured tokens and keys) that are always masked.
	Secrets []string `json:"-"`

	// CustomPatterns allows additional regex patterns to redact.
	CustomPatterns []string `json:"custom_patterns"`

	// Replacement is the string used to replace sensitive data.
	Replacement string `json:"replacement"`
}

// DefaultConfig returns the default redaction configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		Replacement: "[REDACTED]",
	}
}

// Redactor masks sensitive substrings and sensitive field values.
type Redactor struct {
	config         Config
	compiledCustom []*regexp.Regexp
	mu             sync.RWMutex
}

var builtinPatterns = []*regexp.Regexp{
	// Telegram bot token: <bot id>:<35 char secret>
	regexp.MustCompile(`\b\d{6,12}:[A-Za-z0-9_-]{30,}\b`),
	// xi-api-key header or query value
	regexp.MustCompile(`(?i)(xi[_-]api[_-]key)\s*[=:]\s*['"]?([A-Za-z0-9_\-]{16,})['"]?`),
	// Generic key/token assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret|auth[_-]?token|access[_-]?token|bot[_-]?token)\s*[=:]\s*['"]?([A-Za-z0-9_\-\.:]{16,})['"]?`),
	regexp.MustCompile(`(?i)bearer\s+([A-Za-z0-9_\-\.]{20,})`),
	// ElevenLabs keys are issued with an "sk_" prefix
	regexp.MustCompile(`\bsk_[A-Za-z0-9]{20,}\b`),
	// Secrets embedded in JSON payloads
	regexp.MustCompile(`"(?:api_key|apikey|xi-api-key|secret|token)"\s*:\s*"([^"]+)"`),
}

// NewRedactor creates a new Redactor with the given configuration.
func NewRedactor(config Config) *Redactor {
	if config.Replacement == "" {
		config.Replacement = "[REDACTED]"
	}
	r := &Redactor{config: config}
	for _, pattern := range config.CustomPatterns {
		if re, err := regexp.Compile(pattern); err == nil {
			r.compiledCustom = append(r.compiledCustom, re)
		}
	}
	return r
}

// Redact applies all redaction rules to the input string.
func (r *Redactor) Redact(input string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.config.Enabled || input == "" {
		return input
	}

	result := input
	for _, secret := range r.config.Secrets {
		if secret != "" {
			result = strings.ReplaceAll(result, secret, r.config.Replacement)
		}
	}

	for _, re := range builtinPatterns {
		result = r.replaceCaptured(re, result)
	}

	for _, re := range r.compiledCustom {
		result = re.ReplaceAllString(result, r.config.Replacement)
	}

	return result
}

// replaceCaptured masks only the last capture group when the pattern has one,
// so "api_key=abc" keeps its key name.
func (r *Redactor) replaceCaptured(re *regexp.Regexp, input string) string {
	return re.ReplaceAllStringFunc(input, func(match string) string {
		sub := re.FindStringSubmatch(match)
		if len(sub) > 1 && sub[len(sub)-1] != "" {
			return strings.Replace(match, sub[len(sub)-1], r.config.Replacement, 1)
		}
		return r.config.Replacement
	})
}

// RedactFields redacts sensitive values in a map.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	r.mu.RLock()
	enabled := r.config.Enabled
	replacement := r.config.Replacement
	r.mu.RUnlock()

	if !enabled {
		return fields
	}

	result := make(map[string]any, len(fields))
	for k, v := range fields {
		if isSensitiveKey(strings.ToLower(k)) {
			result[k] = replacement
			continue
		}
		switch val := v.(type) {
		case string:
			result[k] = r.Redact(val)
		case error:
			result[k] = r.Redact(val.Error())
		case map[string]any:
			result[k] = r.RedactFields(val)
		default:
			result[k] = v
		}
	}
	return result
}

func isSensitiveKey(key string) bool {
	for _, sk := range []string{"api_key", "apikey", "secret", "token", "credential", "password"} {
		if strings.Contains(key, sk) {
			return true
		}
	}
	return false
}

// SetEnabled enables or disables redaction at runtime.
func (r *Redactor) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.Enabled = enabled
}

var (
	globalMu       sync.RWMutex
	globalRedactor = NewRedactor(DefaultConfig())
)

// Redact applies redaction using the global redactor.
func Redact(input string) string {
	globalMu.RLock()
	r := globalRedactor
	globalMu.RUnlock()
	return r.Redact(input)
}

// RedactFields redacts fields using the global redactor.
func RedactFields(fields map[string]any) map[string]any {
	globalMu.RLock()
	r := globalRedactor
	globalMu.RUnlock()
	return r.RedactFields(fields)
}

// SetGlobalConfig replaces the global redactor, typically once the
// configured credentials are known.
func SetGlobalConfig(config Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalRedactor = NewRedactor(config)
}
