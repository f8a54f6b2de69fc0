package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the application logger. pretty switches to the human-readable
// console writer used during local development.
func New(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimestampFieldName = "timestamp"

	w := io.Writer(os.Stdout)
	if pretty {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

// Init builds the logger and installs it as zerolog's global logger, which
// zerolog.Ctx falls back to when a context carries no logger.
func Init(level string, pretty bool) zerolog.Logger {
	l := New(level, pretty)
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l
}

// GormWriter forwards gorm's Printf-style logging to zerolog.
type GormWriter struct {
	Logger zerolog.Logger
}

func (w GormWriter) Printf(format string, args ...interface{}) {
	w.Logger.WithLevel(gormLevel(format, args)).Str("component", "gorm").Msgf(format, args...)
}

// gormLevel recovers the level of a gorm message from its format prefix, or
// from the arguments for trace lines, which share one format.
func gormLevel(format string, args []interface{}) zerolog.Level {
	switch {
	case strings.Contains(format, "[error]"):
		return zerolog.ErrorLevel
	case strings.Contains(format, "[warn]"):
		return zerolog.WarnLevel
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			return zerolog.ErrorLevel
		case string:
			if strings.HasPrefix(v, "SLOW SQL") {
				return zerolog.WarnLevel
			}
		}
	}
	return zerolog.InfoLevel
}
