package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development environments log at debug to
// the console; production logs at info without color.
func New(environment string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	if environment == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("service", "inkwell-api").
		Str("env", environment).
		Logger()
}
