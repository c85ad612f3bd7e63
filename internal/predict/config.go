package predict

import (
	"os"
	"strconv"
	"strings"
)

// Payload selects which request body variant is sent to the endpoint.
type Payload string

const (
	// PayloadMinimal sends only the two aggregated climate features.
	PayloadMinimal Payload = "minimal"
	// PayloadFull sends the complete feature set.
	PayloadFull Payload = "full"
)

// Config holds prediction endpoint settings.
type Config struct {
	Endpoint  string
	TimeoutMs int
	Payload   Payload
}

// DefaultConfig returns a Config pointing at a local prediction service.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "http://127.0.0.1:5000",
		TimeoutMs: 10000,
		Payload:   PayloadFull,
	}
}

// LoadConfig reads prediction settings from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("RICEYIELD_PREDICT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("RICEYIELD_PREDICT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("RICEYIELD_PREDICT_PAYLOAD"); v != "" {
		switch p := Payload(strings.ToLower(v)); p {
		case PayloadMinimal, PayloadFull:
			cfg.Payload = p
		}
	}

	return cfg
}

// URL returns the absolute URL of the predict route.
func (c Config) URL() string {
	return strings.TrimRight(c.Endpoint, "/") + "/predict"
}
