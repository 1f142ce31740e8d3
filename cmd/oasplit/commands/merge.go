package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/pathutil"
	"github.com/erraggy/oasplit/merger"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	InputDir         string
	Output           string
	ConflictStrategy string
	Format           string
	Validate         bool
	Concurrency      int
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(g *GlobalFlags) *cobra.Command {
	flags := &MergeFlags{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge split documents back into one specification",
		Long: `Merge the documents in a split output directory into a single specification.

Files are read in split_mapping.json order when the manifest exists, otherwise
every spec_*.json, spec_*.yaml, and spec_*.yml file is read in name order.

Conflict strategies (component name collisions):
  keep_first  Keep the first definition seen (default)
  keep_last   Replace with the latest definition
  error       Abort the merge

Operations with the same path and method always resolve to the last file read.`,
		Example: `  oasplit merge
  oasplit merge --input-dir by_tag --output merged.yaml --validate
  oasplit merge --conflict-strategy error --concurrency 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return HandleMerge(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), g, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.InputDir, "input-dir", "i", merger.DefaultInputDir, "directory containing the split documents")
	f.StringVarP(&flags.Output, "output", "o", merger.DefaultOutputPath, "output file for the merged document")
	f.StringVar(&flags.ConflictStrategy, "conflict-strategy", string(document.PolicyKeepFirst), fmt.Sprintf("component conflict strategy: %v", document.ValidPolicies()))
	f.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from output extension)")
	f.BoolVar(&flags.Validate, "validate", false, "validate the merged document")
	f.IntVar(&flags.Concurrency, "concurrency", 1, "number of documents to load in parallel")
	return cmd
}

// HandleMerge executes the merge command
func HandleMerge(ctx context.Context, stdout, stderr io.Writer, g *GlobalFlags, flags *MergeFlags) error {
	policy, err := document.ParsePolicy(flags.ConflictStrategy)
	if err != nil {
		return err
	}
	var format document.Format
	if flags.Format != "" {
		if format, err = document.ParseFormat(flags.Format); err != nil {
			return err
		}
	}

	output, err := pathutil.SanitizeOutputPath(flags.Output)
	if err != nil {
		return err
	}

	m, err := merger.New(flags.InputDir,
		merger.WithLogger(g.Logger(stderr)),
		merger.WithConflictPolicy(policy),
		merger.WithConcurrency(flags.Concurrency),
	)
	if err != nil {
		return err
	}

	result, err := m.Merge(ctx)
	if err != nil {
		return err
	}
	if err := m.WriteResult(result, output, format); err != nil {
		return err
	}

	if !g.Quiet && !g.JSONOutput {
		writeMergeStats(stdout, flags.Output, result)
	}

	if flags.Validate && !g.JSONOutput {
		if issues := merger.ValidateResult(result); len(issues) > 0 {
			Writef(stdout, "\nValidation issues found:\n")
			for _, issue := range issues {
				Writef(stdout, "  - %s\n", issue)
			}
		} else {
			Writef(stdout, "\nMerged spec is valid!\n")
		}
	}

	if g.JSONOutput {
		return OutputJSON(stdout, result.Stats)
	}
	return nil
}

func writeMergeStats(w io.Writer, output string, result *merger.Result) {
	stats := result.Stats
	Writef(w, "Merged %d file(s) into %s\n", stats.FilesProcessed, output)
	Writef(w, "  Paths merged: %d\n", stats.PathsMerged)
	Writef(w, "  Operations merged: %d\n", stats.OperationsMerged)
	Writef(w, "  Path conflicts: %d\n", stats.PathConflicts)
	if len(stats.ComponentConflicts) > 0 {
		Writef(w, "  Component conflicts:\n")
		for _, typ := range slices.Sorted(maps.Keys(stats.ComponentConflicts)) {
			Writef(w, "    %s: %d\n", typ, stats.ComponentConflicts[typ])
		}
	}
	if len(result.Warnings) > 0 {
		Writef(w, "\n%s\n", result.Warnings.Summary())
	}
}
