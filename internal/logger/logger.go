package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process-level structured logger.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
