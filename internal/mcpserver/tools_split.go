package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasplit/internal/pathutil"
	"github.com/erraggy/oasplit/manifest"
	"github.com/erraggy/oasplit/splitter"
)

type splitInput struct {
	File              string `json:"file"                         jsonschema:"Path to the OAS file to split (.json, .yaml, or .yml)"`
	OutputDir         string `json:"output_dir"                   jsonschema:"Directory for the split documents; created if missing"`
	Method            string `json:"method,omitempty"             jsonschema:"Split method: path, tags, or size (default from OASPLIT_SPLIT_METHOD, normally path)"`
	MaxOperations     int    `json:"max_operations,omitempty"     jsonschema:"Operations per document for the path and size methods (default from OASPLIT_MAX_OPERATIONS, normally 30)"`
	IncludeComponents *bool  `json:"include_components,omitempty" jsonschema:"Copy the source components into every document (default true)"`
}

type splitFile struct {
	Name          string `json:"name"`
	Label         string `json:"label,omitempty"`
	Part          int    `json:"part,omitempty"`
	EndpointCount int    `json:"endpoint_count"`
	PathCount     int    `json:"path_count"`
}

type splitOutput struct {
	Type      string           `json:"type"`
	OutputDir string           `json:"output_dir"`
	FileCount int              `json:"file_count"`
	Files     []splitFile      `json:"files,omitempty"`
	Manifest  string           `json:"manifest,omitempty"`
	Summary   splitter.Summary `json:"summary"`
}

func (h *handlers) split(_ context.Context, _ *mcp.CallToolRequest, input splitInput) (*mcp.CallToolResult, splitOutput, error) {
	if input.File == "" {
		return errResult(errors.New("file is required")), splitOutput{}, nil
	}
	if input.OutputDir == "" {
		return errResult(errors.New("output_dir is required")), splitOutput{}, nil
	}
	outDir, err := pathutil.SanitizeOutputPath(input.OutputDir)
	if err != nil {
		return errResult(fmt.Errorf("invalid output_dir: %w", err)), splitOutput{}, nil
	}

	method := cfg.SplitMethod
	if input.Method != "" {
		m, err := splitter.ParseMethod(input.Method)
		if err != nil {
			return errResult(err), splitOutput{}, nil
		}
		method = m
	}
	maxOps := cfg.MaxOperations
	if input.MaxOperations != 0 {
		maxOps = input.MaxOperations
	}
	includeComponents := true
	if input.IncludeComponents != nil {
		includeComponents = *input.IncludeComponents
	}

	s, err := splitter.New(input.File,
		splitter.WithOutputDir(outDir),
		splitter.WithLogger(h.log),
		splitter.WithIncludeComponents(includeComponents),
	)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}
	m, err := s.Split(method, maxOps)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}

	output := splitOutput{
		Type:      string(m.Type),
		OutputDir: s.OutputDir(),
		FileCount: len(m.Files),
		Summary:   s.Summary(),
	}
	if len(m.Files) > 0 {
		output.Manifest = manifest.FileName
	}
	for _, f := range m.Files {
		output.Files = append(output.Files, splitFile{
			Name:          f.Name,
			Label:         f.Label,
			Part:          f.Part,
			EndpointCount: f.EndpointCount,
			PathCount:     f.PathCount,
		})
	}
	return nil, output, nil
}
