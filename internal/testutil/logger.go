package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/erraggy/oasplit/document"
)

// LogEntry is one message captured by a RecordingLogger.
type LogEntry struct {
	Level string
	Msg   string
	Attrs []any
}

// String renders the entry as "LEVEL msg key=value ...".
func (e LogEntry) String() string {
	var b strings.Builder
	b.WriteString(e.Level)
	b.WriteByte(' ')
	b.WriteString(e.Msg)
	for i := 0; i+1 < len(e.Attrs); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Attrs[i], e.Attrs[i+1])
	}
	return b.String()
}

// RecordingLogger captures log calls so tests can assert on warnings.
// It is safe for concurrent use.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	attrs   []any
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (r *RecordingLogger) record(level, msg string, attrs []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := append(append([]any{}, r.attrs...), attrs...)
	*r.entries = append(*r.entries, LogEntry{Level: level, Msg: msg, Attrs: all})
}

// Debug implements document.Logger.
func (r *RecordingLogger) Debug(msg string, attrs ...any) { r.record("DEBUG", msg, attrs) }

// Info implements document.Logger.
func (r *RecordingLogger) Info(msg string, attrs ...any) { r.record("INFO", msg, attrs) }

// Warn implements document.Logger.
func (r *RecordingLogger) Warn(msg string, attrs ...any) { r.record("WARN", msg, attrs) }

// Error implements document.Logger.
func (r *RecordingLogger) Error(msg string, attrs ...any) { r.record("ERROR", msg, attrs) }

// With implements document.Logger. The derived logger records into the
// same entry list.
func (r *RecordingLogger) With(attrs ...any) document.Logger {
	return &RecordingLogger{
		mu:      r.mu,
		entries: r.entries,
		attrs:   append(append([]any{}, r.attrs...), attrs...),
	}
}

// Entries returns a copy of everything recorded so far.
func (r *RecordingLogger) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), *r.entries...)
}

// Messages returns the rendered entries at the given level.
func (r *RecordingLogger) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.String())
		}
	}
	return out
}

// Warnings returns the rendered WARN entries.
func (r *RecordingLogger) Warnings() []string {
	return r.Messages("WARN")
}

var _ document.Logger = (*RecordingLogger)(nil)

// Logged reports whether a message msg was recorded at level, ignoring attributes.
func (r *RecordingLogger) Logged(level, msg string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && e.Msg == msg {
			return true
		}
	}
	return false
}
