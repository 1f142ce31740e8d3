package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParamRegex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single parameter", "/pets/{petId}", []string{"petId"}},
		{"multiple parameters", "/pets/{petId}/owners/{ownerId}", []string{"petId", "ownerId"}},
		{"no parameters", "/pets/all", nil},
		{"parameter at start", "/{tenant}/pets", []string{"tenant"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range PathParamRegex.FindAllStringSubmatch(tt.input, -1) {
				got = append(got, m[1])
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) > 0, HasParams(tt.input))
		})
	}
}

func TestFirstSegmentAndDepth(t *testing.T) {
	tests := []struct {
		path      string
		wantFirst string
		wantDepth int
	}{
		{"/users/{id}/orders", "users", 3},
		{"/users", "users", 1},
		{"/", "", 0},
		{"", "", 0},
		{"/{tenant}/items/", "{tenant}", 2},
		{"health", "health", 1},
		{"//double//slash", "double", 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.wantFirst, FirstSegment(tt.path))
			assert.Equal(t, tt.wantDepth, Depth(tt.path))
		})
	}
}

func TestComponentRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", ComponentRef("schemas", "Pet"))
	assert.Equal(t, "#/components/responses/Not/Found", ComponentRef("responses", "Not/Found"))
}
