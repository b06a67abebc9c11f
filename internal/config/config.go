package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the voice service configuration, loaded once at startup.
type Config struct {
	Port string

	// Twilio configuration. SMS dispatch is disabled when the credentials
	// or the origin number are missing.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioNumber     string

	// Booking link sent in the completion SMS.
	BookingURL string

	// OpenAI configuration for reply generation. When the API key is
	// missing the service falls back to fixed reply templates.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Upper bounds on the external calls made inside one webhook turn.
	// Both must stay well under Twilio's own webhook response deadline.
	ReplyTimeout time.Duration
	SMSTimeout   time.Duration

	// Optional Redis-backed live-call registry.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Instance identifier used in the live-call registry.
	InstanceID string
}

// LoadFromEnv reads the configuration from environment variables.
// Any .env file is loaded by the caller before this runs.
func LoadFromEnv() *Config {
	return &Config{
		Port: getEnvOrDefault("PORT", "8080"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioNumber:     os.Getenv("TWILIO_NUMBER"),

		BookingURL: getEnvOrDefault("BOOKING_URL", "https://example.com/book"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),

		ReplyTimeout: getEnvAsDurationOrDefault("REPLY_TIMEOUT", 5*time.Second),
		SMSTimeout:   getEnvAsDurationOrDefault("SMS_TIMEOUT", 5*time.Second),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		InstanceID: getInstanceID(),
	}
}

// SMSEnabled reports whether the booking handoff can actually dispatch.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioNumber != "" && c.BookingURL != ""
}

// RedisEnabled reports whether the live-call registry should be wired up.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// getEnvOrDefault gets an environment variable or returns the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDurationOrDefault parses an environment variable as a duration
// (accepting either a Go duration string or a number of seconds).
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getInstanceID returns a stable identifier for this service instance,
// preferring the hostname (the pod name under Kubernetes).
func getInstanceID() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	return fmt.Sprintf("edge-voice-%d", time.Now().UnixNano())
}
