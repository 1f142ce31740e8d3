package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"key order ignored", MapOf("a", 1, "b", 2), MapOf("b", 2, "a", 1), true},
		{"different value", MapOf("a", 1), MapOf("a", 2), false},
		{"extra key", MapOf("a", 1), MapOf("a", 1, "b", 2), false},
		{"sequence order matters", []any{1, 2}, []any{2, 1}, false},
		{"nested equal", MapOf("s", []any{MapOf("x", "y")}), MapOf("s", []any{MapOf("x", "y")}), true},
		{"int widths", 5, int64(5), true},
		{"int vs integral float", 1, 1.0, true},
		{"int vs fractional float", 1, 1.5, false},
		{"uint vs float", uint64(3), 3.0, true},
		{"bool vs int", true, 1, false},
		{"zero floats", 0.0, int64(0), true},
		{"nil vs nil", nil, nil, true},
		{"nil vs empty map", nil, NewMap(), false},
		{"string vs map", "x", MapOf(), false},
		{"empty sequences", []any{}, []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestWalk(t *testing.T) {
	tree := MapOf(
		"paths", MapOf("/a", MapOf("get", MapOf("$ref", "#/x", "ignored", MapOf("deep", 1)))),
		"list", []any{"s", 2},
	)

	var visited int
	var refs []string
	Walk(tree, func(v any) bool {
		visited++
		if m, ok := v.(*Map); ok {
			if ref, ok := m.GetString("$ref"); ok {
				refs = append(refs, ref)
				return false
			}
		}
		return true
	})

	assert.Equal(t, []string{"#/x"}, refs)
	// root, paths, /a, get, list, "s", 2
	assert.Equal(t, 7, visited)
}

func TestDeepCopy(t *testing.T) {
	orig := MapOf("info", MapOf("title", "T"), "tags", []any{MapOf("name", "a")})
	cp := DeepCopy(orig).(*Map)

	info, _ := cp.GetMap("info")
	info.Set("title", "changed")
	tags, _ := cp.GetSlice("tags")
	tags[0].(*Map).Set("name", "b")

	origInfo, _ := orig.GetMap("info")
	title, _ := origInfo.GetString("title")
	assert.Equal(t, "T", title)
	origTags, _ := orig.GetSlice("tags")
	name, _ := origTags[0].(*Map).GetString("name")
	assert.Equal(t, "a", name)
}

func TestFingerprint(t *testing.T) {
	a := MapOf("url", "https://a", "description", "<prod>")
	b := MapOf("description", "<prod>", "url", "https://a")

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t, `{"description":"<prod>","url":"https://a"}`, Fingerprint(a))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(MapOf("url", "https://b")))
}
