package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit/splitter"
)

// SplitFlags contains flags for the split command
type SplitFlags struct {
	OutputDir     string
	Method        string
	MaxOperations int
	NoComponents  bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand(g *GlobalFlags) *cobra.Command {
	flags := &SplitFlags{}
	cmd := &cobra.Command{
		Use:   "split <spec_file>",
		Short: "Split a specification into smaller documents",
		Long: `Split an OpenAPI or Swagger document into smaller self-contained documents.

Methods:
  path   Group operations by first path segment, chunked by --max-operations (default)
  tags   One document per tag; untagged operations go to "untagged"
  size   Consecutive chunks of --max-operations operations

A split_mapping.json manifest is written next to the documents.`,
		Example: `  oasplit split openapi.yaml
  oasplit split openapi.yaml --method tags --output-dir by_tag
  oasplit split openapi.yaml --method size --max-operations 50
  oasplit --json-output split openapi.yaml | jq '.files[].name'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return HandleSplit(cmd.OutOrStdout(), cmd.ErrOrStderr(), g, flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.OutputDir, "output-dir", "o", splitter.DefaultOutputDir, "directory for the split documents")
	f.StringVarP(&flags.Method, "method", "m", string(splitter.MethodPath), fmt.Sprintf("split method: %v", splitter.ValidMethods()))
	f.IntVar(&flags.MaxOperations, "max-operations", splitter.DefaultMaxOperations, "operations per document for path and size methods")
	f.BoolVar(&flags.NoComponents, "no-components", false, "omit components from the split documents")
	return cmd
}

// HandleSplit executes the split command
func HandleSplit(stdout, stderr io.Writer, g *GlobalFlags, flags *SplitFlags, specPath string) error {
	// Validate arguments early to fail fast before loading the document
	method, err := splitter.ParseMethod(flags.Method)
	if err != nil {
		return err
	}
	if flags.MaxOperations <= 0 {
		return fmt.Errorf("max-operations must be positive, got %d", flags.MaxOperations)
	}

	s, err := splitter.New(specPath,
		splitter.WithOutputDir(flags.OutputDir),
		splitter.WithLogger(g.Logger(stderr)),
		splitter.WithIncludeComponents(!flags.NoComponents),
	)
	if err != nil {
		return err
	}

	if !g.Quiet && !g.JSONOutput {
		writeSplitSummary(stdout, s.Summary())
	}

	m, err := s.Split(method, flags.MaxOperations)
	if err != nil {
		return err
	}

	if g.JSONOutput {
		return OutputJSON(stdout, m)
	}
	if !g.Quiet {
		Writef(stdout, "Split into %d file(s) in %s\n", len(m.Files), s.OutputDir())
		for _, f := range m.Files {
			Writef(stdout, "  %s (%d operations, %d paths)\n", f.Name, f.EndpointCount, f.PathCount)
		}
	}
	return nil
}

func writeSplitSummary(w io.Writer, s splitter.Summary) {
	Writef(w, "\nSpec Analysis:\n")
	Writef(w, "  Total endpoints: %d\n", s.TotalEndpoints)
	Writef(w, "  Total operations: %d\n", s.TotalOperations)
	Writef(w, "  Total schemas: %d\n", s.TotalSchemas)
	Writef(w, "\n")
}
