package infrastructure

import (
	"os"
	"strings"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/rs/zerolog"
)

// Logger wraps zerolog so downstream packages depend on this package
// instead of the logging library directly.
type Logger struct {
	zerolog.Logger
}

// Component returns a child logger tagged with the component name.
func (l Logger) Component(name string) Logger {
	return Logger{l.With().Str("component", name).Logger()}
}

// New creates a logger configured by level and format ("json" or "console").
func New(cfg config.LoggingConfig) Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out zerolog.Logger

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.New(os.Stdout)
	}

	return Logger{out.Level(level).With().Timestamp().Logger()}
}
