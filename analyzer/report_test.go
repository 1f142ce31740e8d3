package analyzer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/testutil"
)

func TestWriteSummary(t *testing.T) {
	doc := testutil.NewPetStoreDocument()
	doc.Source.Size = 1234567
	analysis := FromDocument(doc, "petstore.yaml").Full()

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, analysis))
	out := buf.String()

	for _, want := range []string{
		"OpenAPI Specification Analysis",
		"Specification: Pet Store v1.0.0",
		"OpenAPI Version: 3.0.3",
		"File: petstore.yaml",
		"Size: 1,234,567 bytes",
		"    GET: 4\n    POST: 1\n    DELETE: 1\n",
		"  schemas: 2\n  responses: 1\n  securitySchemes: 1\n",
		"Reusability Score: 25.0%",
		"Has Security: Yes",
		"Schemes: api_key",
		"Score: 38/100 (Medium)",
		"Valid: Yes",
		"  1. Remove 3 unused components",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\n"+rule+"\n"))
}

func TestWriteSummary_ListsAtMostFiveIssues(t *testing.T) {
	analysis := FromDocument(document.New(nil), "x.json").Full()
	analysis.Validation.Issues = []string{"a", "b", "c", "d", "e", "f"}
	analysis.Validation.IssueCount = 6

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, analysis))
	out := buf.String()
	assert.Contains(t, out, "Valid: No")
	assert.Contains(t, out, "Issues: 6")
	assert.Contains(t, out, "    - e\n")
	assert.NotContains(t, out, "    - f\n")
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "Basic Info", SectionTitle("basic_info"))
	assert.Equal(t, "Paths", SectionTitle("paths"))
}

func TestWriteSection(t *testing.T) {
	section, err := petStore().Section(SectionTags)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, SectionTags, section))
	assert.Equal(t, "\nTags Analysis:\n"+
		"  defined_tags: 2\n"+
		"  used_tags: 2\n"+
		"  undefined_tags: []\n"+
		"  unused_tags: []\n"+
		"  untagged_operations: 1\n"+
		`  tag_usage: {"pets":4,"store":2}`+"\n"+
		"  average_operations_per_tag: 3\n",
		buf.String())
}
