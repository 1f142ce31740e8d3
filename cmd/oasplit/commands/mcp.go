package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit/internal/mcpserver"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(g *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve split, merge, analyze, and validate as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout.

Tool defaults are read from OASPLIT_* environment variables:
  OASPLIT_SPLIT_METHOD        default split method (path)
  OASPLIT_MAX_OPERATIONS      default operations per split document (30)
  OASPLIT_CONFLICT_STRATEGY   default component conflict strategy (keep_first)
  OASPLIT_MERGE_CONCURRENCY   default merge load concurrency (1)
  OASPLIT_MAX_INLINE_SIZE     largest inline document accepted, in bytes (10485760)

Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return HandleMCP(ctx, g, cmd)
		},
	}
}

// HandleMCP runs the MCP server until the client disconnects or ctx ends.
func HandleMCP(ctx context.Context, g *GlobalFlags, cmd *cobra.Command) error {
	return mcpserver.Run(ctx, g.Logger(cmd.ErrOrStderr()))
}
