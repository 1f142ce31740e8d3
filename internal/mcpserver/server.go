// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasplit capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasplit"
	"github.com/erraggy/oasplit/document"
)

const serverInstructions = `oasplit MCP server: splits large OpenAPI specs into smaller self-contained documents, merges them back, analyzes structure, and checks top-level validity.

Configuration: All defaults are configurable via OASPLIT_* environment variables set in your MCP client config.

Key settings:
- OASPLIT_SPLIT_METHOD (default: path) - default split method: path, tags, or size
- OASPLIT_MAX_OPERATIONS (default: 30) - default operations per split document
- OASPLIT_CONFLICT_STRATEGY (default: keep_first) - default component conflict strategy for merge
- OASPLIT_MERGE_CONCURRENCY (default: 1) - documents loaded in parallel during merge
- OASPLIT_MAX_INLINE_SIZE (default: 10485760) - largest inline content accepted, in bytes
- OASPLIT_CACHE_ENABLED (default: true) - disable document caching for analyze and validate

Workflow: analyze a large spec first to pick a split method, split it, edit the pieces, then merge with validate=true.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, log document.Logger) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasplit", Version: oasplit.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, log)
	return server.Run(ctx, &mcp.StdioTransport{})
}

// handlers carries what every tool handler shares.
type handlers struct {
	log document.Logger
}

func registerAllTools(server *mcp.Server, log document.Logger) {
	h := &handlers{log: document.OrNop(log)}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "split",
		Description: "Split an OpenAPI or Swagger file into smaller self-contained documents written to output_dir, plus a split_mapping.json manifest. Methods: path (group by first path segment, chunked by max_operations), tags (one file per tag, untagged operations in 'untagged'), size (consecutive chunks of max_operations). Returns the written files and a summary of the source. Defaults are configurable via OASPLIT_SPLIT_METHOD and OASPLIT_MAX_OPERATIONS.",
	}, h.split)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge a directory of split documents back into one document written to output. Files are read in manifest order when split_mapping.json exists, otherwise spec_*.json/yaml/yml in name order. Component name collisions follow conflict_strategy (keep_first, keep_last, error); duplicate operations always resolve to the last file. Use validate=true to check the merged document. Default strategy is configurable via OASPLIT_CONFLICT_STRATEGY.",
	}, h.merge)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze an OpenAPI or Swagger document. Without section, returns the full analysis: basic_info, paths, components (reusability score), tags, security, complexity (0-100 score), validation, and recommendations. Use section to return only one part.",
	}, h.analyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check the top-level structure of an OpenAPI or Swagger document: version field, info with title and version, a non-empty paths object, and components being an object. This is a shallow check, not full schema validation.",
	}, h.validate)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
