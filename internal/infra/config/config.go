package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	SlackBotToken   string
	SlackAppToken   string
	QCChannel       string // fallback recipient when a row has no PIC
	SheetID         string
	CredentialsFile string
	Worksheet       string

	PollInterval       time.Duration
	DispatchPacing     time.Duration
	StoreRetryAttempts int

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if
// present). Malformed values are errors; absent credentials are not — they
// are reported through Warnings so the process can still come up and log
// loudly instead of dying before the logger exists.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		SlackBotToken:   os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:   os.Getenv("SLACK_APP_TOKEN"),
		QCChannel:       os.Getenv("SLACK_QC_CHANNEL"),
		SheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		Worksheet:       getEnv("SHEET_WORKSHEET", "UTBK"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:     strings.ToLower(getEnv("ENVIRONMENT", "development")),
	}

	var err error
	cfg.PollInterval, err = getDuration("POLL_INTERVAL", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.DispatchPacing, err = getDuration("DISPATCH_PACING", time.Second)
	if err != nil {
		return nil, err
	}

	attemptsStr := getEnv("STORE_RETRY_ATTEMPTS", "3")
	cfg.StoreRetryAttempts, err = strconv.Atoi(attemptsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_RETRY_ATTEMPTS %q: %w", attemptsStr, err)
	}

	return cfg, nil
}

// Warnings lists the external-collaborator values that are absent. Each one
// is logged at startup; the corresponding collaborator will fail on first
// use rather than at load time.
func (c *AppConfig) Warnings() []string {
	var warnings []string
	if c.SlackBotToken == "" {
		warnings = append(warnings, "SLACK_BOT_TOKEN is not set")
	}
	if c.SlackAppToken == "" {
		warnings = append(warnings, "SLACK_APP_TOKEN is not set")
	}
	if c.QCChannel == "" {
		warnings = append(warnings, "SLACK_QC_CHANNEL is not set")
	}
	if c.SheetID == "" {
		warnings = append(warnings, "GOOGLE_SHEET_ID is not set")
	}
	return warnings
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
