// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"

	"github.com/erraggy/oasplit/document"
)

// NewPetStoreDocument creates a small OAS 3.0 document for testing.
//
// It holds six operations over four paths: two tagged "pets", one tagged both
// "pets" and "store", one tagged "store", and one untagged. Components declare
// schemas Pet and Error (only Pet is referenced), response NotFound, and
// security scheme api_key.
func NewPetStoreDocument() *document.Document {
	ref := func(typ, name string) *document.Map {
		return document.MapOf("$ref", "#/components/"+typ+"/"+name)
	}
	op := func(id string, tags ...string) *document.Map {
		m := document.MapOf("operationId", id)
		if len(tags) > 0 {
			list := make([]any, len(tags))
			for i, t := range tags {
				list[i] = t
			}
			m.Set("tags", list)
		}
		m.Set("responses", document.MapOf(
			"200", document.MapOf(
				"description", "OK",
				"content", document.MapOf("application/json", document.MapOf("schema", ref("schemas", "Pet"))),
			),
		))
		return m
	}

	root := document.MapOf(
		"openapi", "3.0.3",
		"info", document.MapOf("title", "Pet Store", "version", "1.0.0", "description", "A sample pet store"),
		"servers", []any{document.MapOf("url", "https://petstore.example.com/v1")},
		"security", []any{document.MapOf("api_key", []any{})},
		"tags", []any{
			document.MapOf("name", "pets", "description", "Everything about pets"),
			document.MapOf("name", "store"),
		},
		"paths", document.MapOf(
			"/pets", document.MapOf(
				"get", op("listPets", "pets"),
				"post", op("createPet", "pets"),
			),
			"/pets/{petId}", document.MapOf(
				"parameters", []any{document.MapOf("name", "petId", "in", "path", "required", true)},
				"get", op("showPet", "pets"),
				"delete", op("deletePet", "pets", "store"),
			),
			"/store/inventory", document.MapOf(
				"get", op("getInventory", "store"),
			),
			"/health", document.MapOf(
				"get", op("health"),
			),
		),
		"components", document.MapOf(
			"schemas", document.MapOf(
				"Pet", document.MapOf("type", "object", "properties", document.MapOf(
					"id", document.MapOf("type", "integer"),
					"name", document.MapOf("type", "string"),
				)),
				"Error", document.MapOf("type", "object"),
			),
			"responses", document.MapOf(
				"NotFound", document.MapOf("description", "Not found"),
			),
			"securitySchemes", document.MapOf(
				"api_key", document.MapOf("type", "apiKey", "name", "X-API-Key", "in", "header"),
			),
		),
	)
	return document.New(root)
}

// NewBulkDocument creates a document with count operations spread over paths
// /{prefix}/r{N}, filling methods in order before moving to the next path.
// With no methods given, every path gets a single get.
func NewBulkDocument(prefix string, count int, methods ...string) *document.Document {
	if len(methods) == 0 {
		methods = []string{"get"}
	}
	paths := document.NewMap()
	for i := 0; i < count; i++ {
		path := fmt.Sprintf("/%s/r%03d", prefix, i/len(methods))
		item, ok := paths.GetMap(path)
		if !ok {
			item = document.NewMap()
			paths.Set(path, item)
		}
		item.Set(methods[i%len(methods)], document.MapOf("operationId", fmt.Sprintf("op%03d", i)))
	}
	return document.New(document.MapOf(
		"openapi", "3.1.0",
		"info", document.MapOf("title", "Bulk API", "version", "1.0.0"),
		"paths", paths,
	))
}

// WriteDocument saves doc to path on fs, picking the format from the extension.
func WriteDocument(t *testing.T, fs billy.Filesystem, path string, doc *document.Document) {
	t.Helper()

	format, err := document.FormatFromPath(path)
	if err != nil {
		t.Fatalf("Failed to pick format for %s: %v", path, err)
	}
	if err := document.Save(fs, doc, path, format); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WriteTempYAML writes doc as YAML into a fresh temporary directory and
// returns the file path.
func WriteTempYAML(t *testing.T, doc *document.Document) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	WriteDocument(t, document.HostFS(), tmpFile, doc)
	return tmpFile
}

// WriteTempJSON writes doc as JSON into a fresh temporary directory and
// returns the file path.
func WriteTempJSON(t *testing.T, doc *document.Document) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	WriteDocument(t, document.HostFS(), tmpFile, doc)
	return tmpFile
}
