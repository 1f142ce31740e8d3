package analyzer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/pathutil"
)

// BasicInfo describes the document's metadata and file.
type BasicInfo struct {
	Title          string `json:"title"`
	Version        string `json:"version"`
	Description    string `json:"description"`
	OpenAPIVersion string `json:"openapi_version"`
	FileSize       int64  `json:"file_size"`
	FilePath       string `json:"file_path"`
}

// BasicInfo reports title, version, and description from info, defaulting to
// "Unknown" and "No description".
func (a *Analyzer) BasicInfo() BasicInfo {
	info, _ := a.doc.Info()
	return BasicInfo{
		Title:          text(info, "title", "Unknown"),
		Version:        text(info, "version", "Unknown"),
		Description:    text(info, "description", "No description"),
		OpenAPIVersion: a.doc.VersionString("Unknown"),
		FileSize:       a.doc.Source.Size,
		FilePath:       a.path,
	}
}

// text renders m[key], or def when absent.
func text(m *document.Map, key, def string) string {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// PathsReport describes paths and operations.
type PathsReport struct {
	TotalPaths             int            `json:"total_paths"`
	TotalOperations        int            `json:"total_operations"`
	OperationsByMethod     map[string]int `json:"operations_by_method"`
	ParameterizedPaths     int            `json:"parameterized_paths"`
	AveragePathDepth       float64        `json:"average_path_depth"`
	MaxPathDepth           int            `json:"max_path_depth"`
	PathPatterns           map[string]int `json:"path_patterns"`
	PathsWithoutOperations int            `json:"paths_without_operations"`
}

// Paths reports path counts and depth statistics. Depth counts non-empty
// segments; patterns group paths by the segment after the leading slash.
func (a *Analyzer) Paths() PathsReport {
	paths, _ := a.doc.Paths()
	counts := document.CountOperations(a.doc)
	report := PathsReport{
		TotalPaths:         paths.Len(),
		TotalOperations:    counts.Total,
		OperationsByMethod: counts.NonZero(),
		PathPatterns:       make(map[string]int),
	}

	totalDepth := 0
	for path, raw := range paths.All() {
		if pathutil.HasParams(path) {
			report.ParameterizedPaths++
		}
		depth := pathutil.Depth(path)
		totalDepth += depth
		report.MaxPathDepth = max(report.MaxPathDepth, depth)
		report.PathPatterns[pathPattern(path)]++

		if !hasOperations(raw) {
			report.PathsWithoutOperations++
		}
	}
	if report.TotalPaths > 0 {
		report.AveragePathDepth = float64(totalDepth) / float64(report.TotalPaths)
	}
	return report
}

func pathPattern(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return "root"
}

func hasOperations(item any) bool {
	m, ok := item.(*document.Map)
	if !ok {
		return false
	}
	return slices.ContainsFunc(document.HTTPMethods, m.Has)
}

// ComponentsReport describes declared components and how many are referenced.
type ComponentsReport struct {
	HasComponents    bool           `json:"has_components"`
	ComponentCounts  map[string]int `json:"component_counts"`
	ReusabilityScore float64        `json:"reusability_score"`
	// UnusedComponents and TotalReferences are set only when at least one
	// component is declared.
	UnusedComponents *int `json:"unused_components,omitempty"`
	TotalReferences  *int `json:"total_references,omitempty"`
}

// Components reports component counts per type and the reusability score:
// the fraction of declared components whose reference string appears as a
// $ref anywhere in the document.
func (a *Analyzer) Components() ComponentsReport {
	comps, _ := a.doc.Components()
	report := ComponentsReport{
		HasComponents:   comps.Len() > 0,
		ComponentCounts: make(map[string]int),
	}

	declared := make(map[string]bool)
	for _, typ := range document.ComponentTypes {
		raw, ok := comps.Get(typ)
		if !ok {
			continue
		}
		section, _ := raw.(*document.Map)
		report.ComponentCounts[typ] = section.Len()
		for _, name := range section.Keys() {
			declared[pathutil.ComponentRef(typ, name)] = true
		}
	}

	used, total := collectRefs(a.doc.Root())
	if len(declared) > 0 {
		hits := 0
		for ref := range declared {
			if used[ref] {
				hits++
			}
		}
		unused := len(declared) - hits
		report.ReusabilityScore = float64(hits) / float64(len(declared))
		report.UnusedComponents = &unused
		report.TotalReferences = &total
	}
	return report
}

// collectRefs gathers every $ref string in v. A mapping holding $ref counts
// as one reference and its other keys are not searched.
func collectRefs(v any) (refs map[string]bool, total int) {
	refs = make(map[string]bool)
	document.Walk(v, func(node any) bool {
		m, ok := node.(*document.Map)
		if !ok {
			return true
		}
		ref, found := m.Get("$ref")
		if !found {
			return true
		}
		total++
		if s, isString := ref.(string); isString {
			refs[s] = true
		}
		return false
	})
	return refs, total
}

// TagsReport describes tag definitions and usage.
type TagsReport struct {
	DefinedTags             int            `json:"defined_tags"`
	UsedTags                int            `json:"used_tags"`
	UndefinedTags           []string       `json:"undefined_tags"`
	UnusedTags              []string       `json:"unused_tags"`
	UntaggedOperations      int            `json:"untagged_operations"`
	TagUsage                map[string]int `json:"tag_usage"`
	AverageOperationsPerTag float64        `json:"average_operations_per_tag"`
}

// Tags compares defined tags with the tags operations use. Undefined and
// unused tag lists are sorted.
func (a *Analyzer) Tags() TagsReport {
	defined := make(map[string]bool)
	for _, name := range a.doc.TagNames() {
		defined[name] = true
	}

	report := TagsReport{
		DefinedTags:   len(defined),
		UndefinedTags: []string{},
		UnusedTags:    []string{},
		TagUsage:      make(map[string]int),
	}
	for _, ep := range mappedOperations(a.doc) {
		tags := document.OperationTags(ep.Operation)
		if len(tags) == 0 {
			report.UntaggedOperations++
			continue
		}
		for _, tag := range tags {
			report.TagUsage[tag]++
		}
	}
	report.UsedTags = len(report.TagUsage)

	usages := 0
	for tag, n := range report.TagUsage {
		usages += n
		if !defined[tag] {
			report.UndefinedTags = append(report.UndefinedTags, tag)
		}
	}
	for tag := range defined {
		if report.TagUsage[tag] == 0 {
			report.UnusedTags = append(report.UnusedTags, tag)
		}
	}
	slices.Sort(report.UndefinedTags)
	slices.Sort(report.UnusedTags)
	if report.UsedTags > 0 {
		report.AverageOperationsPerTag = float64(usages) / float64(report.UsedTags)
	}
	return report
}

// SecurityReport describes security schemes and operation coverage.
type SecurityReport struct {
	HasSecurity               bool     `json:"has_security"`
	SecuritySchemes           []string `json:"security_schemes"`
	GlobalSecurity            any      `json:"global_security"`
	OperationsWithSecurity    int      `json:"operations_with_security"`
	OperationsWithoutSecurity int      `json:"operations_without_security"`
}

// Security reports declared schemes and how many operations are protected.
// An operation without its own security key is protected when the global
// security requirement is non-empty.
func (a *Analyzer) Security() SecurityReport {
	report := SecurityReport{
		SecuritySchemes: []string{},
		GlobalSecurity:  []any{},
	}

	comps, _ := a.doc.Components()
	if raw, ok := comps.Get("securitySchemes"); ok {
		report.HasSecurity = true
		if schemes, isMap := raw.(*document.Map); isMap {
			report.SecuritySchemes = schemes.Keys()
		}
	}
	if global, ok := a.doc.Root().Get("security"); ok {
		report.HasSecurity = true
		report.GlobalSecurity = global
	}

	inherited := nonEmpty(report.GlobalSecurity)
	for _, ep := range mappedOperations(a.doc) {
		if ep.Operation.(*document.Map).Has("security") || inherited {
			report.OperationsWithSecurity++
		} else {
			report.OperationsWithoutSecurity++
		}
	}
	return report
}

// nonEmpty reports whether v holds something: a non-empty collection or
// string, or any other non-null scalar.
func nonEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case []any:
		return len(val) > 0
	case *document.Map:
		return val.Len() > 0
	case string:
		return val != ""
	case bool:
		return val
	case int:
		return val != 0
	case float64:
		return val != 0
	}
	return true
}

// mappedOperations lists the operations that are mappings.
func mappedOperations(doc *document.Document) []document.Endpoint {
	var out []document.Endpoint
	for _, ep := range document.ListOperations(doc, nil) {
		if _, ok := ep.Operation.(*document.Map); ok {
			out = append(out, ep)
		}
	}
	return out
}

// ComplexityReport is the weighted complexity score and its inputs.
type ComplexityReport struct {
	ComplexityScore  int     `json:"complexity_score"`
	ComplexityLevel  string  `json:"complexity_level"`
	TotalOperations  int     `json:"total_operations"`
	TotalComponents  int     `json:"total_components"`
	AveragePathDepth float64 `json:"average_path_depth"`
	ReusabilityScore float64 `json:"reusability_score"`
}

// Complexity levels.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// Complexity scores the document from 0 to 100, adding weights for operation
// count, average path depth, component count, and lack of reuse.
func (a *Analyzer) Complexity() ComplexityReport {
	paths := a.Paths()
	comps := a.Components()

	totalComponents := 0
	for _, n := range comps.ComponentCounts {
		totalComponents += n
	}

	score := 0
	switch ops := paths.TotalOperations; {
	case ops > 100:
		score += 30
	case ops > 50:
		score += 20
	case ops > 20:
		score += 10
	default:
		score += 5
	}
	switch depth := paths.AveragePathDepth; {
	case depth > 4:
		score += 20
	case depth > 3:
		score += 15
	case depth > 2:
		score += 10
	default:
		score += 5
	}
	switch {
	case totalComponents > 100:
		score += 25
	case totalComponents > 50:
		score += 20
	case totalComponents > 20:
		score += 15
	default:
		score += 10
	}
	score += int((1 - comps.ReusabilityScore) * 25)
	score = min(score, 100)

	return ComplexityReport{
		ComplexityScore:  score,
		ComplexityLevel:  level(score),
		TotalOperations:  paths.TotalOperations,
		TotalComponents:  totalComponents,
		AveragePathDepth: paths.AveragePathDepth,
		ReusabilityScore: comps.ReusabilityScore,
	}
}

func level(score int) string {
	switch {
	case score < 30:
		return LevelLow
	case score < 70:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// Recommendations derives advice from a full analysis.
func Recommendations(a *Analysis) []string {
	recs := []string{}

	if !a.Validation.IsValid {
		recs = append(recs, fmt.Sprintf("Fix %d validation issues", a.Validation.IssueCount))
	}

	if !a.Components.HasComponents {
		recs = append(recs, "Consider extracting reusable components to reduce duplication")
	} else if u := a.Components.UnusedComponents; u != nil && *u > 0 {
		recs = append(recs, fmt.Sprintf("Remove %d unused components", *u))
	}

	if n := a.Tags.UntaggedOperations; n > 0 {
		recs = append(recs, fmt.Sprintf("Add tags to %d untagged operations", n))
	}
	if n := len(a.Tags.UndefinedTags); n > 0 {
		recs = append(recs, fmt.Sprintf("Define %d undefined tags in the tags section", n))
	}

	if !a.Security.HasSecurity {
		recs = append(recs, "Add security definitions to protect your API")
	} else if n := a.Security.OperationsWithoutSecurity; n > 0 {
		recs = append(recs, fmt.Sprintf("Add security to %d unprotected operations", n))
	}

	if a.Complexity.ComplexityScore > 70 {
		recs = append(recs, "Consider splitting this large spec into smaller, more manageable parts")
	}
	if a.Components.ReusabilityScore < 0.3 {
		recs = append(recs, "Improve component reusability by extracting common patterns")
	}
	return recs
}
