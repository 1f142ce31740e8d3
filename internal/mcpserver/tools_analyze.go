package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasplit/analyzer"
)

type analyzeInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The OAS document to analyze"`
	Section string    `json:"section,omitempty" jsonschema:"Return only this section: basic_info, paths, components, tags, security, complexity, or validation"`
}

type analyzeOutput struct {
	Section string `json:"section,omitempty"`
	Result  any    `json:"result"`
}

func (h *handlers) analyze(_ context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	doc, err := input.Spec.resolve(h.log)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	path := input.Spec.File
	if path == "" {
		path = inlineSourcePath
	}
	a := analyzer.FromDocument(doc, path)

	if input.Section == "" {
		return nil, analyzeOutput{Result: a.Full()}, nil
	}
	section, err := a.Section(input.Section)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}
	return nil, analyzeOutput{Section: input.Section, Result: section}, nil
}
