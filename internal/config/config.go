package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Backend selection
	DataBackend    string
	BackendURL     string
	BackendTimeout time.Duration
	DataDir        string

	// Locale defaults for new sessions
	DefaultLanguage string
	DefaultCurrency string

	// UI behaviour
	SearchDebounce time.Duration
	SessionTTL     time.Duration
	SessionMax     int

	// Protection
	RateLimitPerMinute int

	// AMQP activity events, disabled when AMQPURL is empty
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Observability
	Environment  string
	LogLevel     string
	OTLPEndpoint string
}

func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8081"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DataBackend:    getEnv("DATA_BACKEND", "memory"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080/api"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 0),
		DataDir:        getEnv("DATA_DIR", "data"),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "es"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "ARS"),

		SearchDebounce: getEnvDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*time.Minute),
		SessionMax:     getEnvInt("SESSION_MAX", 1000),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "proppilot"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "activity"),

		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "rest"}
	if !oneOf(c.DataBackend, validBackends) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "rest" {
		if c.BackendURL == "" {
			errors = append(errors, "backend URL cannot be empty when using rest backend")
		} else if u, err := url.Parse(c.BackendURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid backend URL '%s': %v", c.BackendURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid backend URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}
	if c.BackendTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid backend timeout %v: cannot be negative", c.BackendTimeout))
	}

	// Validate locale defaults
	if !oneOf(c.DefaultLanguage, []string{"es", "en"}) {
		errors = append(errors, fmt.Sprintf("invalid default language '%s': must be 'es' or 'en'", c.DefaultLanguage))
	}
	if !oneOf(c.DefaultCurrency, []string{"ARS", "USD"}) {
		errors = append(errors, fmt.Sprintf("invalid default currency '%s': must be 'ARS' or 'USD'", c.DefaultCurrency))
	}

	// Validate UI behaviour
	if c.SearchDebounce < 0 || c.SearchDebounce > 5*time.Second {
		errors = append(errors, fmt.Sprintf("invalid search debounce %v: must be between 0 and 5 seconds", c.SearchDebounce))
	}
	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}
	if c.SessionMax < 1 {
		errors = append(errors, fmt.Sprintf("invalid session max %d: must be at least 1", c.SessionMax))
	} else if c.SessionMax > 100000 {
		errors = append(errors, fmt.Sprintf("invalid session max %d: must be at most 100000", c.SessionMax))
	}
	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if !oneOf(strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
