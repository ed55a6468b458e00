package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"question_qc_bot/internal/infra/config"
)

// Log is the global logger instance.
var Log = logrus.New()

// Init configures the global logger from application configuration:
// text output for development, JSON for production/staging.
func Init(cfg *config.AppConfig) {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("invalid log level %q, defaulting to info: %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	switch strings.ToLower(cfg.Environment) {
	case "production", "staging":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// Component returns an entry tagged with the owning component's name.
// Constructors take one of these rather than reaching for the global.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
