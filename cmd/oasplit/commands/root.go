package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit"
)

// NewRootCommand builds the oasplit command tree.
func NewRootCommand() *cobra.Command {
	g := &GlobalFlags{}
	root := &cobra.Command{
		Use:   "oasplit",
		Short: "Split, merge, and analyze OpenAPI specifications",
		Long: `oasplit breaks large OpenAPI or Swagger documents into smaller self-contained
documents, merges them back together, and reports on their structure.`,
		Example: `  oasplit split openapi.yaml --method tags
  oasplit merge --input-dir split_specs --output merged.yaml --validate
  oasplit analyze openapi.yaml --section complexity
  oasplit validate openapi.json`,
		Version:       oasplit.Version(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	g.bind(root)

	root.AddCommand(
		NewSplitCommand(g),
		NewMergeCommand(g),
		NewAnalyzeCommand(g),
		NewValidateCommand(g),
		NewMCPCommand(g),
		NewVersionCommand(),
	)
	return root
}
