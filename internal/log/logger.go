// Package log wires zerolog into the processor's minimal Logger interface
// and exposes the --loglevel flag type the CLI binds to.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger adapts a zerolog.Logger to pkg/processor.Logger's (msg, kv...)
// shape. kv is expected to be alternating key/value pairs, the same
// convention audit-scanner's report logger uses for structured fields.
type Logger struct {
	zl zerolog.Logger
}

// New builds a console-writer Logger at the given level, with runID
// attached to every line so concurrent webhook processes can be told
// apart in aggregated logs.
func New(level zerolog.Level, runID string) Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	zl := zerolog.New(writer).Level(level).With().Timestamp().Str("run_id", runID).Logger()
	return Logger{zl: zl}
}

// NewJSON builds a plain JSON Logger writing to w, for deployments that
// ship logs to a collector rather than a terminal.
func NewJSON(w io.Writer, level zerolog.Level, runID string) Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Str("run_id", runID).Logger()
	return Logger{zl: zl}
}

func (l Logger) Debug(msg string, kv ...any) {
	event(l.zl.Debug(), kv).Msg(msg)
}

func (l Logger) Info(msg string, kv ...any) {
	event(l.zl.Info(), kv).Msg(msg)
}

func (l Logger) Error(msg string, err error, kv ...any) {
	event(l.zl.Error().Err(err), kv).Msg(msg)
}

// event attaches kv's alternating key/value pairs to e. A trailing odd key
// with no value is logged as-is under an "extra" field rather than dropped.
func event(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	if len(kv)%2 == 1 {
		e = e.Interface("extra", kv[len(kv)-1])
	}
	return e
}
