package document

import (
	"fmt"
	"slices"
	"time"
)

// HTTPMethods lists the operation keys of a path item in canonical order.
// This order, not source order, decides operation listing and chunking.
var HTTPMethods = []string{"get", "post", "put", "delete", "patch", "options", "head", "trace"}

// ComponentTypes lists the component sections in canonical order.
var ComponentTypes = []string{
	"schemas", "responses", "parameters", "examples",
	"requestBodies", "headers", "securitySchemes",
	"links", "callbacks",
}

// Info extension keys stamped on every split document.
const (
	ExtSplitPart      = "x-split-part"
	ExtSplitTimestamp = "x-split-timestamp"
)

// IsHTTPMethod reports whether key names an operation in a path item.
func IsHTTPMethod(key string) bool {
	return slices.Contains(HTTPMethods, key)
}

// Source describes where a loaded document came from.
type Source struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Document wraps the root mapping of an OpenAPI or Swagger description.
//
// Accessors return ok=false both when a key is absent and when its value has
// the wrong shape, so callers never confuse "missing" with "null".
type Document struct {
	root   *Map
	Source Source
}

// New wraps root. A nil root becomes an empty mapping.
func New(root *Map) *Document {
	if root == nil {
		root = NewMap()
	}
	return &Document{root: root}
}

// Root returns the underlying mapping. Mutations are visible to the Document.
func (d *Document) Root() *Map {
	return d.root
}

// Version returns the version key ("openapi" or "swagger") and its value.
// openapi wins when both are present.
func (d *Document) Version() (key string, value any, ok bool) {
	for _, k := range []string{"openapi", "swagger"} {
		if v, found := d.root.Get(k); found {
			return k, v, true
		}
	}
	return "", nil, false
}

// VersionString returns the version value as text, or def when absent.
func (d *Document) VersionString(def string) string {
	_, v, ok := d.Version()
	if !ok {
		return def
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// Info returns the info object.
func (d *Document) Info() (*Map, bool) { return d.root.GetMap("info") }

// Paths returns the paths object.
func (d *Document) Paths() (*Map, bool) { return d.root.GetMap("paths") }

// Components returns the components object.
func (d *Document) Components() (*Map, bool) { return d.root.GetMap("components") }

// Servers returns the servers list.
func (d *Document) Servers() ([]any, bool) { return d.root.GetSlice("servers") }

// Security returns the global security requirements.
func (d *Document) Security() ([]any, bool) { return d.root.GetSlice("security") }

// Tags returns the tag definitions.
func (d *Document) Tags() ([]any, bool) { return d.root.GetSlice("tags") }

// ExternalDocs returns the externalDocs value in whatever shape it has.
func (d *Document) ExternalDocs() (any, bool) { return d.root.Get("externalDocs") }

// Title returns info.title.
func (d *Document) Title() (string, bool) {
	info, ok := d.Info()
	if !ok {
		return "", false
	}
	return info.GetString("title")
}

// ComponentSection returns components[typ] when both levels are mappings.
func (d *Document) ComponentSection(typ string) (*Map, bool) {
	comps, ok := d.Components()
	if !ok {
		return nil, false
	}
	return comps.GetMap(typ)
}

// TagNames returns the names of every defined tag, skipping malformed entries.
func (d *Document) TagNames() []string {
	tags, _ := d.Tags()
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if name, ok := tagName(t); ok {
			names = append(names, name)
		}
	}
	return names
}

func tagName(v any) (string, bool) {
	m, ok := v.(*Map)
	if !ok {
		return "", false
	}
	return m.GetString("name")
}

// OperationTags returns the string entries of an operation's tags array.
func OperationTags(op any) []string {
	m, ok := op.(*Map)
	if !ok {
		return nil
	}
	raw, _ := m.GetSlice("tags")
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
