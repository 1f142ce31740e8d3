package document

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasplit/oaserrors"
)

// ConflictPolicy decides which definition survives when two documents declare
// differing components with the same type and name.
type ConflictPolicy string

const (
	// PolicyKeepFirst keeps the definition already present.
	PolicyKeepFirst ConflictPolicy = "keep_first"
	// PolicyKeepLast replaces the existing definition with the incoming one.
	PolicyKeepLast ConflictPolicy = "keep_last"
	// PolicyError aborts on the first differing definition.
	PolicyError ConflictPolicy = "error"
)

// ValidPolicies returns every supported conflict policy.
func ValidPolicies() []string {
	return []string{string(PolicyKeepFirst), string(PolicyKeepLast), string(PolicyError)}
}

// IsValidPolicy reports whether s names a supported conflict policy.
func IsValidPolicy(s string) bool {
	return slices.Contains(ValidPolicies(), s)
}

// ParsePolicy converts s to a ConflictPolicy.
func ParsePolicy(s string) (ConflictPolicy, error) {
	if !IsValidPolicy(s) {
		return "", &oaserrors.ConfigError{
			Option:  "conflict-strategy",
			Value:   s,
			Message: fmt.Sprintf("must be one of %v", ValidPolicies()),
		}
	}
	return ConflictPolicy(s), nil
}

// ConflictCounts holds the number of conflicts seen per component type.
type ConflictCounts map[string]int

// Add accumulates other into c.
func (c ConflictCounts) Add(other ConflictCounts) {
	for typ, n := range other {
		c[typ] += n
	}
}

// NonZero returns a copy holding only the types with at least one conflict.
func (c ConflictCounts) NonZero() ConflictCounts {
	out := make(ConflictCounts)
	for typ, n := range c {
		if n > 0 {
			out[typ] = n
		}
	}
	return out
}

// Total returns the sum over all types.
func (c ConflictCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// ExtractComponents returns a mapping of every component type to the
// definitions doc declares for it, or to an empty mapping.
//
// The per-type mappings are new, but the definitions they hold are shared with
// doc. Callers that mutate a definition must copy it first.
func ExtractComponents(doc *Document) *Map {
	out := NewMap()
	for _, typ := range ComponentTypes {
		section := NewMap()
		if src, ok := doc.ComponentSection(typ); ok {
			section = src.Clone()
		}
		out.Set(typ, section)
	}
	return out
}

// HasAnyComponents reports whether any type in comps holds a definition.
func HasAnyComponents(comps *Map) bool {
	for _, v := range comps.All() {
		if m, ok := v.(*Map); ok && m.Len() > 0 {
			return true
		}
	}
	return false
}

// MergeComponents copies every component in source into target, both being
// mappings of component type to named definitions.
//
// A name absent from target is inserted. A structurally equal definition is a
// no-op. A differing definition is a conflict, counted and resolved by policy:
// keep_first leaves target alone, keep_last overwrites it with a warning, and
// error returns an *oaserrors.ConflictError at once. Changes made before the
// error are not rolled back.
func MergeComponents(target, source *Map, policy ConflictPolicy, log Logger) (ConflictCounts, error) {
	log = OrNop(log)
	counts := make(ConflictCounts, len(ComponentTypes))
	for _, typ := range ComponentTypes {
		counts[typ] = 0
	}

	for _, typ := range ComponentTypes {
		src, ok := source.GetMap(typ)
		if !ok {
			continue
		}
		dst, ok := target.GetMap(typ)
		if !ok {
			dst = NewMap()
			target.Set(typ, dst)
		}

		for name, def := range src.All() {
			existing, found := dst.Get(name)
			if !found {
				dst.Set(name, def)
				continue
			}
			if Equal(existing, def) {
				continue
			}

			counts[typ]++
			switch policy {
			case PolicyError:
				return counts, &oaserrors.ConflictError{ComponentType: typ, Name: name}
			case PolicyKeepLast:
				dst.Set(name, def)
				log.Warn("overwriting conflicting component", "type", typ, "name", name)
			default:
				log.Debug("keeping existing component", "type", typ, "name", name)
			}
		}
	}
	return counts, nil
}
