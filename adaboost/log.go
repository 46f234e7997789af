package adaboost

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "adaboost").Logger()

// SetLogger replaces the package logger. Pass zerolog.Nop() to silence it.
func SetLogger(l zerolog.Logger) {
	logger = l
}
