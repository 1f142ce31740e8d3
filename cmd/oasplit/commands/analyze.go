package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit/analyzer"
	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/fileutil"
	"github.com/erraggy/oasplit/internal/pathutil"
)

// AnalyzeFlags contains flags for the analyze command
type AnalyzeFlags struct {
	Full    bool
	Section string
	Output  string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(g *GlobalFlags) *cobra.Command {
	flags := &AnalyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <spec_file>",
		Short: "Report on the structure and quality of a specification",
		Long: `Analyze an OpenAPI or Swagger document.

Sections:
  ` + strings.Join(analyzer.SectionNames(), ", ") + `

Without flags a human-readable summary is printed. --section prints one
section, --full computes everything and can save it with --output.`,
		Example: `  oasplit analyze openapi.yaml
  oasplit analyze openapi.yaml --section complexity
  oasplit analyze openapi.yaml --full --output analysis.json
  oasplit --json-output analyze openapi.yaml --full | jq '.recommendations'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return HandleAnalyze(cmd.OutOrStdout(), cmd.ErrOrStderr(), g, flags, args[0])
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.Full, "full", false, "compute the full analysis")
	f.StringVarP(&flags.Section, "section", "s", "", "print only one section")
	f.StringVarP(&flags.Output, "output", "o", "", "save the full analysis as JSON (with --full)")
	return cmd
}

// HandleAnalyze executes the analyze command
func HandleAnalyze(stdout, stderr io.Writer, g *GlobalFlags, flags *AnalyzeFlags, specPath string) error {
	if flags.Section != "" && !analyzer.IsValidSection(flags.Section) {
		Writef(stdout, "Available sections: %s\n", strings.Join(analyzer.SectionNames(), ", "))
		return fmt.Errorf("unknown section: %s", flags.Section)
	}

	a, err := analyzer.New(specPath, analyzer.WithLogger(g.Logger(stderr)))
	if err != nil {
		return err
	}

	switch {
	case flags.Full:
		analysis := a.Full()
		if g.JSONOutput {
			if err := OutputJSON(stdout, analysis); err != nil {
				return err
			}
		} else if err := analyzer.WriteSummary(stdout, analysis); err != nil {
			return err
		}
		if flags.Output != "" {
			if err := saveAnalysis(flags.Output, analysis); err != nil {
				return err
			}
			Writef(stdout, "\nAnalysis saved to %s\n", flags.Output)
		}
		return nil

	case flags.Section != "":
		section, err := a.Section(flags.Section)
		if err != nil {
			return err
		}
		if g.JSONOutput {
			return OutputJSON(stdout, section)
		}
		return analyzer.WriteSection(stdout, flags.Section, section)

	default:
		return analyzer.WriteSummary(stdout, a.Full())
	}
}

func saveAnalysis(path string, analysis *analyzer.Analysis) error {
	data, err := document.Marshal(analysis, document.FormatJSON)
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}
	cleaned, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing analysis: %w", err)
	}
	return nil
}
