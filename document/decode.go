package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

const mergeTag = "!!merge"

// decodeValue parses YAML content into a document value tree.
func decodeValue(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return newNodeDecoder().value(&root)
}

type nodeDecoder struct {
	expanding map[*yaml.Node]bool
}

func newNodeDecoder() *nodeDecoder {
	return &nodeDecoder{expanding: make(map[*yaml.Node]bool)}
}

func (d *nodeDecoder) value(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])

	case yaml.MappingNode:
		return d.mapping(n)

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := d.value(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.AliasNode:
		if d.expanding[n] {
			return nil, fmt.Errorf("line %d: recursive alias *%s", n.Line, n.Value)
		}
		d.expanding[n] = true
		defer delete(d.expanding, n)
		return d.value(n.Alias)

	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("line %d: unexpected node kind %v", n.Line, n.Kind)
}

func (d *nodeDecoder) mapping(n *yaml.Node) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		v, err := d.value(val)
		if err != nil {
			return nil, err
		}
		if key.Tag == mergeTag {
			if err := mergeInto(m, v, key.Line); err != nil {
				return nil, err
			}
			continue
		}
		m.Set(key.Value, v)
	}
	return m, nil
}

// mergeInto applies a YAML merge key. Keys already present win.
func mergeInto(m *Map, v any, line int) error {
	switch src := v.(type) {
	case *Map:
		for k, val := range src.All() {
			if !m.Has(k) {
				m.Set(k, val)
			}
		}
	case []any:
		for _, item := range src {
			if err := mergeInto(m, item, line); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("line %d: merge key value must be a mapping", line)
	}
	return nil
}

func scalarValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return v, nil
	default:
		// timestamps and binary stay as their source text
		return n.Value, nil
	}
}

// errorPosition extracts a 1-based line and column from a decoder error.
func errorPosition(data []byte, err error) (line, col int) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return offsetPosition(data, syntaxErr.Offset)
	}
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		_, _ = fmt.Sscanf(msg[i:], "line %d", &line)
	}
	return line, 0
}

func offsetPosition(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
