package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/erraggy/oasplit/document"
)

const (
	rule = "============================================================"
	// maxListedIssues caps the validation issues shown in a summary.
	maxListedIssues = 5
)

// WriteSummary renders a human-readable report of a to w. Counts use
// thousands separators.
func WriteSummary(w io.Writer, a *Analysis) error {
	var buf bytes.Buffer
	p := message.NewPrinter(language.English)

	p.Fprintf(&buf, "\n%s\nOpenAPI Specification Analysis\n%s\n", rule, rule)

	info := a.BasicInfo
	p.Fprintf(&buf, "\nSpecification: %s v%s\n", info.Title, info.Version)
	p.Fprintf(&buf, "OpenAPI Version: %s\n", info.OpenAPIVersion)
	p.Fprintf(&buf, "File: %s\n", info.FilePath)
	p.Fprintf(&buf, "Size: %d bytes\n", info.FileSize)

	paths := a.Paths
	p.Fprintf(&buf, "\nPaths & Operations:\n")
	p.Fprintf(&buf, "  Total Paths: %d\n", paths.TotalPaths)
	p.Fprintf(&buf, "  Total Operations: %d\n", paths.TotalOperations)
	p.Fprintf(&buf, "  Operations by Method:\n")
	for _, method := range document.HTTPMethods {
		if n, ok := paths.OperationsByMethod[method]; ok {
			p.Fprintf(&buf, "    %s: %d\n", strings.ToUpper(method), n)
		}
	}

	comps := a.Components
	if len(comps.ComponentCounts) > 0 {
		p.Fprintf(&buf, "\nComponents:\n")
		for _, typ := range document.ComponentTypes {
			if n, ok := comps.ComponentCounts[typ]; ok {
				p.Fprintf(&buf, "  %s: %d\n", typ, n)
			}
		}
		p.Fprintf(&buf, "  Reusability Score: %.1f%%\n", comps.ReusabilityScore*100)
	}

	tags := a.Tags
	p.Fprintf(&buf, "\nTags:\n")
	p.Fprintf(&buf, "  Defined: %d\n", tags.DefinedTags)
	p.Fprintf(&buf, "  Used: %d\n", tags.UsedTags)
	if len(tags.UndefinedTags) > 0 {
		p.Fprintf(&buf, "  Undefined: %s\n", strings.Join(tags.UndefinedTags, ", "))
	}

	sec := a.Security
	p.Fprintf(&buf, "\nSecurity:\n")
	p.Fprintf(&buf, "  Has Security: %s\n", yesNo(sec.HasSecurity))
	if len(sec.SecuritySchemes) > 0 {
		p.Fprintf(&buf, "  Schemes: %s\n", strings.Join(sec.SecuritySchemes, ", "))
	}
	p.Fprintf(&buf, "  Protected Operations: %d\n", sec.OperationsWithSecurity)
	p.Fprintf(&buf, "  Unprotected Operations: %d\n", sec.OperationsWithoutSecurity)

	p.Fprintf(&buf, "\nComplexity:\n")
	p.Fprintf(&buf, "  Score: %d/100 (%s)\n", a.Complexity.ComplexityScore, a.Complexity.ComplexityLevel)

	v := a.Validation
	p.Fprintf(&buf, "\nValidation:\n")
	p.Fprintf(&buf, "  Valid: %s\n", yesNo(v.IsValid))
	if !v.IsValid {
		p.Fprintf(&buf, "  Issues: %d\n", v.IssueCount)
		for _, issue := range v.Issues[:min(len(v.Issues), maxListedIssues)] {
			p.Fprintf(&buf, "    - %s\n", issue)
		}
	}

	if len(a.Recommendations) > 0 {
		p.Fprintf(&buf, "\nRecommendations:\n")
		for i, rec := range a.Recommendations {
			p.Fprintf(&buf, "  %d. %s\n", i+1, rec)
		}
	}

	p.Fprintf(&buf, "\n%s\n", rule)

	_, err := w.Write(buf.Bytes())
	return err
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// SectionTitle turns a section name such as "basic_info" into "Basic Info".
func SectionTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// WriteSection renders one section as a heading followed by "key: value"
// lines in field order. Nested values are written as compact JSON.
func WriteSection(w io.Writer, name string, section any) error {
	data, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("analyzer: marshal section %s: %w", name, err)
	}
	doc, err := document.Parse(data, document.FormatJSON, name, nil)
	if err != nil {
		return fmt.Errorf("analyzer: section %s: %w", name, err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\n%s Analysis:\n", SectionTitle(name))
	for key, value := range doc.Root().All() {
		fmt.Fprintf(&buf, "  %s: %s\n", key, formatValue(value))
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func formatValue(v any) string {
	switch v.(type) {
	case *document.Map, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	case nil:
		return "null"
	}
	return fmt.Sprint(v)
}
