package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/testutil"
)

// minimalOAS31 is a minimal valid OpenAPI 3.1 spec used across tests.
const minimalOAS31 = `{
  "openapi": "3.1.0",
  "info": {"title": "Test API", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "tags": ["pets"],
        "responses": {"200": {"$ref": "#/components/responses/PetList"}}
      },
      "post": {
        "operationId": "createPet",
        "tags": ["pets"],
        "responses": {"201": {"description": "Created"}}
      }
    },
    "/users/{id}": {
      "get": {
        "operationId": "getUser",
        "responses": {"200": {"description": "OK"}}
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {"type": "object"}
    },
    "responses": {
      "PetList": {
        "description": "Pets",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}
      }
    }
  }
}`

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasplit-test", Version: "test"},
		nil,
	)
	registerAllTools(server, nil)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

// unmarshalStructured decodes a tool result's structured content into a map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 4)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"split", "merge", "analyze", "validate"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Validate(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "validate",
		Arguments: map[string]any{
			"spec": map[string]any{"content": minimalOAS31},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["valid"])
	assert.Equal(t, "3.1.0", structured["version"])
	assert.Equal(t, float64(0), structured["issue_count"])
}

func TestIntegration_CallTool_AnalyzeSection(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "analyze",
		Arguments: map[string]any{
			"spec":    map[string]any{"content": minimalOAS31},
			"section": "paths",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "paths", structured["section"])
	paths, ok := structured["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), paths["total_paths"])
	assert.Equal(t, float64(3), paths["total_operations"])
}

func TestIntegration_SplitThenMerge(t *testing.T) {
	session := startTestSession(t)
	dir := t.TempDir()
	spec := filepath.Join(dir, "api.json")
	testutil.WriteDocument(t, document.HostFS(), spec, testutil.NewPetStoreDocument())

	splitRes, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "split",
		Arguments: map[string]any{
			"file":       spec,
			"output_dir": filepath.Join(dir, "parts"),
			"method":     "tags",
		},
	})
	require.NoError(t, err)
	require.False(t, splitRes.IsError)
	assert.Equal(t, float64(3), unmarshalStructured(t, splitRes)["file_count"])

	merged := filepath.Join(dir, "merged.yaml")
	mergeRes, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "merge",
		Arguments: map[string]any{
			"input_dir": filepath.Join(dir, "parts"),
			"output":    merged,
			"validate":  true,
		},
	})
	require.NoError(t, err)
	require.False(t, mergeRes.IsError)

	structured := unmarshalStructured(t, mergeRes)
	assert.Equal(t, float64(3), structured["files_processed"])
	assert.Equal(t, true, structured["valid"])

	doc, err := document.Load(document.HostFS(), merged, nil)
	require.NoError(t, err)
	paths, _ := doc.Paths()
	assert.Equal(t, 4, paths.Len())
}

func TestIntegration_CallTool_ErrorResult(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "validate",
		Arguments: map[string]any{
			"spec": map[string]any{"file": "/tmp/definitely/missing.yaml"},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.NotContains(t, text.Text, "/tmp/definitely")
}
