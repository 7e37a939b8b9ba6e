// Package trace is the observational diagnostics sink for keelson.
//
// It receives the fully resolved argument vector before each child-process
// launch. Tracing is off unless the KEELSON_TRACE environment variable or
// the config file turns it on, and it never affects control flow: a launch
// proceeds identically whether or not its argv was traced.
package trace

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// EnvVar turns tracing on. "1", "2", or "true" trace to stderr; an
// absolute path traces to that file, appending.
const EnvVar = "KEELSON_TRACE"

var (
	mu      sync.Mutex
	sink    zerolog.Logger
	active  bool
	loaded  bool
	closers []io.Closer
)

// load reads EnvVar once. Config can still flip the state later through
// SetEnabled.
func load() {
	if loaded {
		return
	}
	loaded = true

	val := os.Getenv(EnvVar)
	switch strings.ToLower(val) {
	case "", "0", "false":
		return
	case "1", "2", "true":
		sink = newSink(os.Stderr)
		active = true
		return
	}
	if filepath.IsAbs(val) {
		f, err := os.OpenFile(val, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			// Fall back to stderr rather than lose the trace.
			sink = newSink(os.Stderr)
			active = true
			return
		}
		closers = append(closers, f)
		sink = newSink(f)
		active = true
	}
}

func newSink(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(out).With().Timestamp().Logger()
}

// SetEnabled overrides the environment-derived state, tracing to stderr
// when turning on without a sink already configured.
func SetEnabled(on bool) {
	mu.Lock()
	defer mu.Unlock()
	load()
	if on && !active {
		sink = newSink(os.Stderr)
	}
	active = on
}

// Argv traces one resolved argument vector under the given label.
func Argv(label string, argv []string) {
	mu.Lock()
	defer mu.Unlock()
	load()
	if !active {
		return
	}
	sink.Debug().Str("event", label).Strs("argv", argv).Msg("exec")
}

// Printf traces a free-form diagnostic line.
func Printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	load()
	if !active {
		return
	}
	sink.Debug().Msgf(format, args...)
}

// Close releases any trace file opened from the environment.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}
