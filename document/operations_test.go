package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operationsDoc() *Document {
	return New(MapOf(
		"openapi", "3.1.0",
		"paths", MapOf(
			"/b", MapOf(
				"post", MapOf("operationId", "createB"),
				"parameters", []any{},
				"get", MapOf("operationId", "listB"),
			),
			"/broken", "not a path item",
			"/a", MapOf(
				"trace", MapOf(),
				"x-internal", true,
				"delete", "not an operation",
			),
		),
	))
}

func TestListOperations(t *testing.T) {
	log := &warnCounter{}
	endpoints := ListOperations(operationsDoc(), log)

	var got []string
	for _, ep := range endpoints {
		got = append(got, ep.Method+" "+ep.Path)
	}
	assert.Equal(t, []string{"get /b", "post /b", "delete /a", "trace /a"}, got)
	assert.Equal(t, []string{"invalid path item, skipping"}, log.warnings)
	assert.Equal(t, 2, DistinctPaths(endpoints))
}

func TestListOperationsWithoutPaths(t *testing.T) {
	assert.Empty(t, ListOperations(New(MapOf("openapi", "3.1.0")), nil))
}

func TestCountOperations(t *testing.T) {
	counts := CountOperations(operationsDoc())

	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, map[string]int{"get": 1, "post": 1, "delete": 1, "trace": 1}, counts.NonZero())

	data, err := json.Marshal(counts)
	require.NoError(t, err)
	assert.Equal(t,
		`{"get":1,"post":1,"put":0,"delete":1,"patch":0,"options":0,"head":0,"trace":1,"total":4}`,
		string(data))
}

func TestIsHTTPMethod(t *testing.T) {
	assert.True(t, IsHTTPMethod("patch"))
	assert.False(t, IsHTTPMethod("parameters"))
	assert.False(t, IsHTTPMethod("GET"))
}
