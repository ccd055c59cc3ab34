// Package logger wraps zerolog with a component field so every subsystem logs
// through the same shape. APP_ENV=dev switches to the human-readable console
// writer; anything else emits JSON.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a component-scoped logger.
func New(component string) zerolog.Logger {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	var z zerolog.Logger
	if env == "dev" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		z = zerolog.New(writer)
	} else {
		z = zerolog.New(os.Stdout)
	}
	return z.With().Timestamp().Str("component", component).Logger()
}
