package document

import "encoding/json"

// Endpoint is one operation at one path.
type Endpoint struct {
	Path      string
	Method    string
	Operation any
}

// ListOperations returns every operation in doc: paths in document order and,
// within a path item, methods in HTTPMethods order.
//
// Path items that are not mappings are skipped with a warning. Operations are
// returned whatever their shape; callers that read them must check.
func ListOperations(doc *Document, log Logger) []Endpoint {
	log = OrNop(log)
	paths, _ := doc.Paths()
	var endpoints []Endpoint
	for path, raw := range paths.All() {
		item, ok := raw.(*Map)
		if !ok {
			log.Warn("invalid path item, skipping", "path", path)
			continue
		}
		for _, method := range HTTPMethods {
			if op, ok := item.Get(method); ok {
				endpoints = append(endpoints, Endpoint{Path: path, Method: method, Operation: op})
			}
		}
	}
	return endpoints
}

// DistinctPaths returns how many different paths the endpoints touch.
func DistinctPaths(endpoints []Endpoint) int {
	seen := make(map[string]struct{}, len(endpoints))
	for _, ep := range endpoints {
		seen[ep.Path] = struct{}{}
	}
	return len(seen)
}

// OperationCounts holds operation totals per HTTP method.
type OperationCounts struct {
	ByMethod map[string]int
	Total    int
}

// CountOperations tallies the operations of every mapping-shaped path item.
func CountOperations(doc *Document) OperationCounts {
	counts := OperationCounts{ByMethod: make(map[string]int, len(HTTPMethods))}
	for _, m := range HTTPMethods {
		counts.ByMethod[m] = 0
	}
	paths, _ := doc.Paths()
	for _, raw := range paths.All() {
		item, ok := raw.(*Map)
		if !ok {
			continue
		}
		for _, method := range HTTPMethods {
			if item.Has(method) {
				counts.ByMethod[method]++
				counts.Total++
			}
		}
	}
	return counts
}

// NonZero returns the per-method counts that are above zero.
func (c OperationCounts) NonZero() map[string]int {
	out := make(map[string]int)
	for m, n := range c.ByMethod {
		if n > 0 {
			out[m] = n
		}
	}
	return out
}

// MarshalJSON emits {"get": n, ..., "trace": n, "total": n} in canonical order.
func (c OperationCounts) MarshalJSON() ([]byte, error) {
	m := NewMap()
	for _, method := range HTTPMethods {
		m.Set(method, c.ByMethod[method])
	}
	m.Set("total", c.Total)
	return m.MarshalJSON()
}

var _ json.Marshaler = OperationCounts{}
