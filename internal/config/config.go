package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pixil98/go-errors"
	"github.com/sirupsen/logrus"
)

const (
	UIPlain = "plain"
	UITUI   = "tui"
)

// Config holds the application configuration.
type Config struct {
	LogLevel     string
	LogFile      string
	UI           string
	TypingDelay  time.Duration
	WrapWidth    int
	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig loads the configuration from environment variables. A .env
// file in the working directory is read first when present; variables that
// are already set win.
func LoadConfig() (*Config, error) {
	// Not fatal, the variables may be set directly.
	_ = godotenv.Load()

	el := errors.NewErrorList()

	cfg := &Config{
		LogLevel:     getenv("BBY_LOG_LEVEL", "info"),
		LogFile:      os.Getenv("BBY_LOG_FILE"),
		UI:           strings.ToLower(getenv("BBY_UI", UIPlain)),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	delay, err := time.ParseDuration(getenv("BBY_TYPING_DELAY", "15ms"))
	if err != nil {
		el.Add(fmt.Errorf("parsing BBY_TYPING_DELAY: %w", err))
	}
	cfg.TypingDelay = delay

	width, err := strconv.Atoi(getenv("BBY_WRAP_WIDTH", "80"))
	if err != nil {
		el.Add(fmt.Errorf("parsing BBY_WRAP_WIDTH: %w", err))
	}
	cfg.WrapWidth = width

	if err := el.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		el.Add(fmt.Errorf("BBY_LOG_LEVEL: %w", err))
	}
	if c.UI != UIPlain && c.UI != UITUI {
		el.Add(fmt.Errorf("BBY_UI must be %q or %q, got %q", UIPlain, UITUI, c.UI))
	}
	if c.TypingDelay < 0 {
		el.Add(fmt.Errorf("BBY_TYPING_DELAY must not be negative"))
	}
	if c.WrapWidth < 0 {
		el.Add(fmt.Errorf("BBY_WRAP_WIDTH must not be negative"))
	}

	return el.Err()
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
