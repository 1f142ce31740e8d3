package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/pathutil"
	"github.com/erraggy/oasplit/merger"
)

type mergeInput struct {
	InputDir         string `json:"input_dir"                   jsonschema:"Directory containing the split documents"`
	Output           string `json:"output"                      jsonschema:"File to write the merged document to"`
	ConflictStrategy string `json:"conflict_strategy,omitempty" jsonschema:"Component conflict strategy: keep_first, keep_last, or error (default from OASPLIT_CONFLICT_STRATEGY, normally keep_first)"`
	Format           string `json:"format,omitempty"            jsonschema:"Output format: json or yaml (default: from the output extension)"`
	Validate         bool   `json:"validate,omitempty"          jsonschema:"Check the top-level structure of the merged document"`
	Concurrency      int    `json:"concurrency,omitempty"       jsonschema:"Documents loaded in parallel (default from OASPLIT_MERGE_CONCURRENCY, normally 1)"`
}

type mergeOutput struct {
	Output             string         `json:"output"`
	FilesProcessed     int            `json:"files_processed"`
	PathsMerged        int            `json:"paths_merged"`
	OperationsMerged   int            `json:"operations_merged"`
	PathConflicts      int            `json:"path_conflicts"`
	ComponentConflicts map[string]int `json:"component_conflicts,omitempty"`
	Files              []string       `json:"files,omitempty"`
	Warnings           []string       `json:"warnings,omitempty"`
	Valid              *bool          `json:"valid,omitempty"`
	Issues             []string       `json:"issues,omitempty"`
}

func (h *handlers) merge(ctx context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	if input.InputDir == "" {
		return errResult(errors.New("input_dir is required")), mergeOutput{}, nil
	}
	if input.Output == "" {
		return errResult(errors.New("output is required")), mergeOutput{}, nil
	}
	outPath, err := pathutil.SanitizeOutputPath(input.Output)
	if err != nil {
		return errResult(fmt.Errorf("invalid output path: %w", err)), mergeOutput{}, nil
	}

	policy := cfg.ConflictStrategy
	if input.ConflictStrategy != "" {
		p, err := document.ParsePolicy(input.ConflictStrategy)
		if err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		policy = p
	}
	var format document.Format
	if input.Format != "" {
		f, err := document.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		format = f
	}
	concurrency := cfg.MergeConcurrency
	if input.Concurrency != 0 {
		concurrency = input.Concurrency
	}

	m, err := merger.New(input.InputDir,
		merger.WithLogger(h.log),
		merger.WithConflictPolicy(policy),
		merger.WithConcurrency(concurrency),
	)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	result, err := m.Merge(ctx)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	if err := m.WriteResult(result, outPath, format); err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	stats := result.Stats
	output := mergeOutput{
		Output:             outPath,
		FilesProcessed:     stats.FilesProcessed,
		PathsMerged:        stats.PathsMerged,
		OperationsMerged:   stats.OperationsMerged,
		PathConflicts:      stats.PathConflicts,
		ComponentConflicts: stats.ComponentConflicts.NonZero(),
		Files:              result.Files,
		Warnings:           result.Warnings.Strings(),
	}
	if input.Validate {
		issues := merger.ValidateResult(result)
		valid := len(issues) == 0
		output.Valid = &valid
		output.Issues = issues
	}
	return nil, output, nil
}
