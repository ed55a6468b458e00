package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SLACK_BOT_TOKEN", "SLACK_APP_TOKEN", "SLACK_QC_CHANNEL",
		"GOOGLE_SHEET_ID", "GOOGLE_CREDENTIALS_FILE", "SHEET_WORKSHEET",
		"POLL_INTERVAL", "DISPATCH_PACING", "STORE_RETRY_ATTEMPTS",
		"LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	assert.Equal(t, "UTBK", cfg.Worksheet)
	assert.Equal(t, 2*time.Minute, cfg.PollInterval)
	assert.Equal(t, time.Second, cfg.DispatchPacing)
	assert.Equal(t, 3, cfg.StoreRetryAttempts)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-1")
	t.Setenv("SLACK_APP_TOKEN", "xapp-1")
	t.Setenv("SLACK_QC_CHANNEL", "C123")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-1")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("STORE_RETRY_ATTEMPTS", "5")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "xoxb-1", cfg.SlackBotToken)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.StoreRetryAttempts)
	assert.Equal(t, "production", cfg.Environment)
	assert.Empty(t, cfg.Warnings())
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_INTERVAL", "two minutes")

	_, err := Load()
	require.Error(t, err)
}

func TestWarningsListMissingCollaboratorValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-1")

	cfg, err := Load()
	require.NoError(t, err)

	warnings := cfg.Warnings()
	assert.Len(t, warnings, 3)
	assert.Contains(t, warnings, "SLACK_APP_TOKEN is not set")
	assert.Contains(t, warnings, "SLACK_QC_CHANNEL is not set")
	assert.Contains(t, warnings, "GOOGLE_SHEET_ID is not set")
}
