// Package config provides environment-driven configuration for the BinSolver
// client, the mock API server and logging.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

const (
	// DefaultBaseURL is the production BinSolver endpoint.
	DefaultBaseURL = "https://api.binsolver.com"
	// DefaultTimeout bounds every client call unless overridden.
	DefaultTimeout = 30 * time.Second
	// DefaultCircuitBreakerCooldown is how long an open breaker rejects calls.
	DefaultCircuitBreakerCooldown = 30 * time.Second

	invalidTimeout time.Duration = -1
)

// Config holds the complete application configuration.
type Config struct {
	Client ClientConfig
	Server ServerConfig
	Log    LogConfig
}

// ClientConfig holds BinSolver client configuration.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// CircuitBreakerThreshold is the number of consecutive failures that opens
	// the breaker; 0 disables it
	CircuitBreakerThreshold int
	CircuitBreakerCooldown  time.Duration
}

// ServerConfig holds mock API server configuration.
type ServerConfig struct {
	Port        string
	APIKeys     map[string]bool
	CORSOrigins []string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Client: ClientConfig{
			APIKey:                  os.Getenv("BINSOLVER_API_KEY"),
			BaseURL:                 getEnv("BINSOLVER_BASE_URL", DefaultBaseURL),
			Timeout:                 getEnvTimeout("BINSOLVER_TIMEOUT", DefaultTimeout),
			CircuitBreakerThreshold: getEnvInt("BINSOLVER_CIRCUIT_BREAKER_THRESHOLD", 0),
			CircuitBreakerCooldown:  getEnvDuration("BINSOLVER_CIRCUIT_BREAKER_COOLDOWN", DefaultCircuitBreakerCooldown),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			APIKeys:     ParseAPIKeys(os.Getenv("API_KEYS")),
			CORSOrigins: parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// Validate applies defaults to unset values and checks that the client can
// be constructed.
func (c *ClientConfig) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout < 0 {
		return &sdkerrors.ValidationError{Field: "timeout", Message: "must be a positive number of seconds or a duration"}
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CircuitBreakerThreshold < 0 {
		c.CircuitBreakerThreshold = 0
	}
	if c.CircuitBreakerCooldown <= 0 {
		c.CircuitBreakerCooldown = DefaultCircuitBreakerCooldown
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return &sdkerrors.ValidationError{Field: "api_key", Message: "must not be empty"}
	}
	return nil
}

// maxTimeoutSeconds is the largest timeout time.Duration can hold.
const maxTimeoutSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseTimeout accepts a number of seconds ("30", "2.5") or a Go duration ("30s", "1m").
// The result must be a positive, representable duration.
func ParseTimeout(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(secs) || secs <= 0 || secs >= maxTimeoutSeconds {
			return 0, false
		}
		d := time.Duration(secs * float64(time.Second))
		if d <= 0 {
			return 0, false
		}
		return d, true
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvTimeout returns invalidTimeout for a value ParseTimeout rejects, so
// that Validate fails instead of running with the default.
func getEnvTimeout(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, ok := ParseTimeout(v); ok {
		return d
	}
	return invalidTimeout
}

// ParseAPIKeys splits a comma-separated key list into a lookup set. Blank
// entries are skipped; an empty string yields nil.
func ParseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
