package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LLMConfig holds all configuration for the generative advice endpoint.
type LLMConfig struct {
	Enabled     bool
	LogCalls    bool
	Endpoint    string
	Model       string
	APIKey      string
	TimeoutMs   int // per attempt
	MaxRetries  int
	BaseDelayMs int
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// Advice is disabled until an API key is configured.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:     false,
		LogCalls:    false,
		Endpoint:    "https://generativelanguage.googleapis.com",
		Model:       "gemini-2.0-flash",
		TimeoutMs:   20000,
		MaxRetries:  3,
		BaseDelayMs: 1000,
	}
}

// LoadConfig reads advice configuration from environment variables,
// falling back to defaults for any unset values. Setting an API key
// enables advice unless RICEYIELD_ADVICE_ENABLED says otherwise.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("RICEYIELD_ADVICE_API_KEY"); v != "" {
		cfg.APIKey = v
		cfg.Enabled = true
	}
	if v := os.Getenv("RICEYIELD_ADVICE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("RICEYIELD_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("RICEYIELD_ADVICE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("RICEYIELD_ADVICE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("RICEYIELD_ADVICE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("RICEYIELD_ADVICE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("RICEYIELD_ADVICE_BASE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BaseDelayMs = n
		}
	}

	return cfg
}

// RetryDelay returns the wait before retry k (k >= 1): base * 2^k.
// With the default base that is 2s, 4s, 8s.
func (c LLMConfig) RetryDelay(k int) time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond * time.Duration(1<<k)
}

// GenerateURL returns the generateContent URL for the configured model.
func (c LLMConfig) GenerateURL() string {
	return strings.TrimRight(c.Endpoint, "/") + "/v1beta/models/" + c.Model + ":generateContent"
}
