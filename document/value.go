package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Walk visits v and every value nested beneath it in document order.
// Mapping entries are visited in insertion order and sequence items by index.
// When visit returns false the children of that value are skipped.
func Walk(v any, visit func(v any) bool) {
	if !visit(v) {
		return
	}
	switch val := v.(type) {
	case *Map:
		for _, child := range val.All() {
			Walk(child, visit)
		}
	case []any:
		for _, child := range val {
			Walk(child, visit)
		}
	}
}

// Equal reports whether a and b are structurally equal.
// Mapping comparison ignores key order; sequence comparison does not.
// Numbers compare by value, so 1 and 1.0 are equal. Booleans never equal
// numbers.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.All() {
			other, ok := bv.Get(k)
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}

	if af, ok := a.(float64); ok {
		return floatEquals(af, b)
	}
	if bf, ok := b.(float64); ok {
		return floatEquals(bf, a)
	}
	if ai, ok := asInt(a); ok {
		bi, ok := asInt(b)
		return ok && ai == bi
	}
	return a == b
}

// floatEquals compares f with a float or integer value.
func floatEquals(f float64, other any) bool {
	switch o := other.(type) {
	case float64:
		return f == o || (math.IsNaN(f) && math.IsNaN(o))
	case uint64:
		return f >= 0 && f == math.Trunc(f) && f < math.MaxUint64 && uint64(f) == o
	}
	i, ok := asInt(other)
	return ok && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && int64(f) == i
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// DeepCopy returns a copy of v that shares no mappings or sequences with it.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case *Map:
		out := NewMap()
		for k, child := range val.All() {
			out.Set(k, DeepCopy(child))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = DeepCopy(child)
		}
		return out
	default:
		return v
	}
}

// ToPlain converts v into map[string]any and []any values suitable for
// generic encoders. Key order is lost.
func ToPlain(v any) any {
	switch val := v.(type) {
	case *Map:
		out := make(map[string]any, val.Len())
		for k, child := range val.All() {
			out[k] = ToPlain(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ToPlain(child)
		}
		return out
	default:
		return v
	}
}

// Fingerprint returns a canonical JSON rendering of v with sorted keys.
// Two values with equal fingerprints are interchangeable for de-duplication.
func Fingerprint(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ToPlain(v)); err != nil {
		// NaN and Inf have no JSON form; fmt also prints maps sorted.
		return fmt.Sprint(ToPlain(v))
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
