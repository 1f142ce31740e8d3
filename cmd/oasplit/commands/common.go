// Package commands provides CLI command handlers for oasplit.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit/document"
)

// ErrInvalidSpec is returned by commands that already reported a failed
// validation on stdout. main exits 1 without printing it again.
var ErrInvalidSpec = errors.New("specification is invalid")

// GlobalFlags contains the persistent flags shared by every command.
type GlobalFlags struct {
	Verbose    bool
	Quiet      bool
	JSONOutput bool
}

// bind registers the global flags on cmd's persistent flag set.
func (g *GlobalFlags) bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&g.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&g.Quiet, "quiet", "q", false, "only log warnings and errors, suppress informational output")
	pf.BoolVar(&g.JSONOutput, "json-output", false, "print results as JSON")
}

// Level returns the log level selected by the flags.
func (g *GlobalFlags) Level() slog.Level {
	switch {
	case g.Verbose:
		return slog.LevelDebug
	case g.Quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Logger returns a text logger writing to w at the selected level.
func (g *GlobalFlags) Logger(w io.Writer) document.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: g.Level()})
	return document.NewSlogAdapter(slog.New(handler))
}

// OutputJSON writes v to w as indented JSON.
func OutputJSON(w io.Writer, v any) error {
	data, err := document.Marshal(v, document.FormatJSON)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Writef prints command output to w. A failed write is reported on stderr
// and does not fail the command.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "oasplit: write output: %v\n", err)
	}
}
