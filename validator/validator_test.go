package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasplit/document"
)

func TestValidate(t *testing.T) {
	info := func() *document.Map { return document.MapOf("title", "T", "version", "1") }
	paths := func() *document.Map { return document.MapOf("/a", document.MapOf("get", document.MapOf())) }

	tests := []struct {
		name string
		root *document.Map
		want []string
	}{
		{
			name: "valid openapi",
			root: document.MapOf("openapi", "3.1.0", "info", info(), "paths", paths(), "components", document.MapOf()),
			want: []string{},
		},
		{
			name: "valid swagger",
			root: document.MapOf("swagger", "2.0", "info", info(), "paths", paths()),
			want: []string{},
		},
		{
			name: "missing version and title",
			root: document.MapOf("info", document.MapOf("version", "1"), "paths", paths()),
			want: []string{IssueMissingVersion, IssueMissingTitle},
		},
		{
			name: "empty document",
			root: document.NewMap(),
			want: []string{IssueMissingVersion, IssueMissingInfo, IssueMissingPaths},
		},
		{
			name: "wrong shapes",
			root: document.MapOf("openapi", "3.0.0", "info", "text", "paths", []any{}, "components", []any{}),
			want: []string{IssueInfoNotObject, IssuePathsNotObject, IssueComponentsNotObj},
		},
		{
			name: "empty info and paths",
			root: document.MapOf("openapi", "3.0.0", "info", document.MapOf(), "paths", document.MapOf()),
			want: []string{IssueMissingTitle, IssueMissingVersionKey, IssueEmptyPaths},
		},
		{
			name: "null title still present",
			root: document.MapOf("openapi", "3.0.0", "info", document.MapOf("title", nil, "version", "1"), "paths", paths()),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(document.New(tt.root)))
		})
	}
}

func TestCheck(t *testing.T) {
	result := Check(document.New(document.MapOf("info", document.MapOf("version", "1"), "paths", document.MapOf("/a", document.MapOf()))))

	assert.False(t, result.IsValid)
	assert.Equal(t, 2, result.IssueCount)
	assert.Equal(t, IssueMissingVersion, result.Issues[0], "version check comes first")

	valid := Check(document.New(document.MapOf(
		"openapi", "3.1.0",
		"info", document.MapOf("title", "T", "version", "1"),
		"paths", document.MapOf("/a", document.MapOf()),
	)))
	assert.True(t, valid.IsValid)
	assert.NotNil(t, valid.Issues)
}
