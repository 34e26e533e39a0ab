package log

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Attribute keys attached to every line of a run.
const (
	KeyRunID   = "run_id"
	KeyTraceID = "trace_id"
)

// Options configure New.
type Options struct {
	// Level is the minimum level written.
	Level slog.Level

	// Text selects the human-readable text format instead of JSON.
	Text bool

	// RunID identifies one invocation. Empty omits the attribute.
	RunID string

	// TraceID correlates the run with an external system. It defaults
	// to RunID.
	TraceID string
}

// New creates a logger that sanitizes sensitive values and tags every
// record with the run and trace ids.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var base slog.Handler
	if opts.Text {
		base = slog.NewTextHandler(w, handlerOpts)
	} else {
		base = slog.NewJSONHandler(w, handlerOpts)
	}
	logger := slog.New(NewSecureHandler(base))

	traceID := opts.TraceID
	if traceID == "" {
		traceID = opts.RunID
	}
	if opts.RunID != "" {
		logger = logger.With(KeyRunID, opts.RunID)
	}
	if traceID != "" {
		logger = logger.With(KeyTraceID, traceID)
	}
	return logger
}

// ParseLevel converts a log_level setting (DEBUG, INFO, WARNING or
// ERROR, any case) to a slog level. Verbose forces Debug.
func ParseLevel(name string, verbose bool) (slog.Level, error) {
	if verbose {
		return slog.LevelDebug, nil
	}
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// NewRunID returns a new lexically sortable run id.
func NewRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Discard returns a logger that writes nothing.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
