package telemetry

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Setup configures the global log level and output format. With debug enabled
// the level drops to debug and output switches to a human-readable console
// writer; otherwise JSON lines go to stdout.
func Setup(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(logger.Info(), msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(logger.Warn(), msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(logger.Error(), msg, fields)
}

func write(ev *zerolog.Event, msg string, fields map[string]any) {
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			ev = ev.Str(k, val)
		case error:
			if val != nil {
				ev = ev.Str(k, val.Error())
			}
		default:
			ev = ev.Interface(k, v)
		}
	}
	ev.Msg(msg)
}

// WithComponent returns a zerolog logger tagged with a component field for
// packages that prefer a handle over the package-level helpers.
func WithComponent(component string) zerolog.Logger {
	return logger.With().Str("component", strings.TrimSpace(component)).Logger()
}
