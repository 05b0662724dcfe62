package log

import (
	"fmt"

	"github.com/rs/zerolog"
)

var supportedValues = [6]string{
	zerolog.LevelTraceValue,
	zerolog.LevelDebugValue,
	zerolog.LevelInfoValue,
	zerolog.LevelWarnValue,
	zerolog.LevelErrorValue,
	zerolog.LevelFatalValue,
}

// SupportedValues is surfaced in --loglevel's usage string.
var SupportedValues = supportedValues

// Level is a pflag.Value wrapping a zerolog level name, so it can be bound
// directly to a cobra flag.
type Level struct {
	value string
}

func (l *Level) String() string {
	if l.value == "" {
		return "info"
	}
	return l.value
}

func (l *Level) Set(value string) error {
	for _, opt := range supportedValues {
		if value == opt {
			l.value = value
			return nil
		}
	}
	return fmt.Errorf("supported values: %v", supportedValues)
}

func (l *Level) Type() string {
	return "string"
}

// ZeroLogLevel parses the flag's value, falling back to info on an empty or
// unrecognized string rather than failing startup over a log-level typo.
func (l *Level) ZeroLogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.String())
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
