package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			Writef(cmd.OutOrStdout(), "oasplit %s\n\n%s\n", oasplit.Version(), oasplit.BuildInfo())
		},
	}
}
