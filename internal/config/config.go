// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrConfigMissing is returned by Validate when a required credential is blank.
var ErrConfigMissing = errors.New("missing required configuration")

const (
	defaultEndpoint      = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	defaultRetryInterval = 600 * time.Second
	defaultFetchTimeout  = 30 * time.Second
)

// Config holds the application configuration.
type Config struct {
	APIToken          string
	NotifyToken       string
	NotifyDestination string
	APIEndpoint       string
	RetryInterval     time.Duration
	FetchTimeout      time.Duration
	LogLevel          string
	LogFile           string
	JournalPath       string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Variables already set in the
// environment take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	retry, err := durationEnv("RETRY_INTERVAL", defaultRetryInterval)
	if err != nil {
		return nil, err
	}
	timeout, err := durationEnv("FETCH_TIMEOUT", defaultFetchTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIToken:          firstEnv("API_TOKEN", "PRACTICUM_TOKEN"),
		NotifyToken:       firstEnv("NOTIFY_TOKEN", "TELEGRAM_TOKEN"),
		NotifyDestination: firstEnv("NOTIFY_DESTINATION", "TELEGRAM_CHAT_ID"),
		APIEndpoint:       envOrDefault("API_ENDPOINT", defaultEndpoint),
		RetryInterval:     retry,
		FetchTimeout:      timeout,
		LogLevel:          strings.ToLower(envOrDefault("LOG_LEVEL", "debug")),
		LogFile:           strings.TrimSpace(os.Getenv("LOG_FILE")),
		JournalPath:       strings.TrimSpace(os.Getenv("JOURNAL_PATH")),
	}, nil
}

// Validate reports every blank credential. Whitespace-only values count as blank.
func (c *Config) Validate() error {
	var missing []string
	if c.APIToken == "" {
		missing = append(missing, "API_TOKEN")
	}
	if c.NotifyToken == "" {
		missing = append(missing, "NOTIFY_TOKEN")
	}
	if c.NotifyDestination == "" {
		missing = append(missing, "NOTIFY_DESTINATION")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ", "))
	}
	return nil
}

// CanNotify reports whether enough is configured to reach the notification channel.
func (c *Config) CanNotify() bool {
	return c.NotifyToken != "" && c.NotifyDestination != ""
}

// firstEnv returns the first non-blank value among the given keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}
