package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasplit/validator"
)

type validateInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to validate"`
}

type validateOutput struct {
	Valid      bool     `json:"valid"`
	Version    string   `json:"version,omitempty"`
	IssueCount int      `json:"issue_count"`
	Issues     []string `json:"issues,omitempty"`
}

func (h *handlers) validate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Spec.resolve(h.log)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result := validator.Check(doc)
	return nil, validateOutput{
		Valid:      result.IsValid,
		Version:    doc.VersionString(""),
		IssueCount: result.IssueCount,
		Issues:     result.Issues,
	}, nil
}
