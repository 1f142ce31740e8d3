package validator

import "github.com/erraggy/oasplit/document"

// Issue messages, in the order Validate checks for them.
const (
	IssueMissingVersion    = "Missing OpenAPI/Swagger version field"
	IssueMissingInfo       = "Missing 'info' object"
	IssueInfoNotObject     = "'info' must be an object"
	IssueMissingTitle      = "Missing 'info.title'"
	IssueMissingVersionKey = "Missing 'info.version'"
	IssueMissingPaths      = "Missing 'paths' object"
	IssuePathsNotObject    = "'paths' must be an object"
	IssueEmptyPaths        = "'paths' is empty"
	IssueComponentsNotObj  = "'components' must be an object"
)

// Result is the outcome of a structural check.
type Result struct {
	IsValid    bool     `json:"is_valid"`
	IssueCount int      `json:"issue_count"`
	Issues     []string `json:"issues"`
}

// Validate runs the shallow structural checks against doc and returns the
// issues found in a fixed order: version, info, paths, components.
// An empty slice means the document is structurally valid.
//
// Only the presence and shape of top-level fields are checked; nothing is
// validated against the OpenAPI schema.
func Validate(doc *document.Document) []string {
	root := doc.Root()
	issues := []string{}

	if _, _, ok := doc.Version(); !ok {
		issues = append(issues, IssueMissingVersion)
	}

	if !root.Has("info") {
		issues = append(issues, IssueMissingInfo)
	} else if info, ok := root.GetMap("info"); !ok {
		issues = append(issues, IssueInfoNotObject)
	} else {
		if !info.Has("title") {
			issues = append(issues, IssueMissingTitle)
		}
		if !info.Has("version") {
			issues = append(issues, IssueMissingVersionKey)
		}
	}

	if !root.Has("paths") {
		issues = append(issues, IssueMissingPaths)
	} else if paths, ok := root.GetMap("paths"); !ok {
		issues = append(issues, IssuePathsNotObject)
	} else if paths.Len() == 0 {
		issues = append(issues, IssueEmptyPaths)
	}

	if root.Has("components") {
		if _, ok := root.GetMap("components"); !ok {
			issues = append(issues, IssueComponentsNotObj)
		}
	}

	return issues
}

// Check wraps Validate in a Result.
func Check(doc *document.Document) Result {
	issues := Validate(doc)
	return Result{
		IsValid:    len(issues) == 0,
		IssueCount: len(issues),
		Issues:     issues,
	}
}
