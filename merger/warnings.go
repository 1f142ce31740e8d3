package merger

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/severity"
)

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnMissingFile indicates a manifest entry whose file does not exist.
	WarnMissingFile WarningCategory = "missing_file"
	// WarnManifestUnreadable indicates a manifest that could not be read, so
	// files were discovered by name instead.
	WarnManifestUnreadable WarningCategory = "manifest_unreadable"
	// WarnLoadFailed indicates an input file that could not be loaded and was skipped.
	WarnLoadFailed WarningCategory = "load_failed"
	// WarnPathConflict indicates a path item key present in more than one input.
	WarnPathConflict WarningCategory = "path_conflict"
	// WarnComponentConflict indicates differing components with the same name.
	WarnComponentConflict WarningCategory = "component_conflict"
	// WarnInvalidPathItem indicates a path item that is not a mapping.
	WarnInvalidPathItem WarningCategory = "invalid_path_item"
	// WarnEmptyPaths indicates the merged document has no paths.
	WarnEmptyPaths WarningCategory = "empty_paths"
)

// MergeWarning represents a structured, non-fatal issue found while merging.
type MergeWarning struct {
	// Category identifies the type of warning.
	Category WarningCategory `json:"category"`
	// Path is the document location affected, such as "paths./users.get".
	Path string `json:"path,omitempty"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// SourceFile is the input file that triggered the warning.
	SourceFile string `json:"source_file,omitempty"`
	// Severity indicates warning severity.
	Severity severity.Severity `json:"severity"`
	// Context provides additional details.
	Context map[string]any `json:"context,omitempty"`
}

// String returns the warning message.
func (w *MergeWarning) String() string {
	return w.Message
}

// NewMissingFileWarning creates a warning for a manifest entry with no file.
func NewMissingFileWarning(file string) *MergeWarning {
	return &MergeWarning{
		Category:   WarnMissingFile,
		Message:    fmt.Sprintf("file from mapping not found: %s", file),
		SourceFile: file,
		Severity:   severity.SeverityWarning,
	}
}

// NewManifestUnreadableWarning creates a warning for a manifest that failed to load.
func NewManifestUnreadableWarning(file string, err error) *MergeWarning {
	return &MergeWarning{
		Category:   WarnManifestUnreadable,
		Message:    fmt.Sprintf("failed to load mapping file: %v", err),
		SourceFile: file,
		Severity:   severity.SeverityWarning,
	}
}

// NewLoadFailedWarning creates a warning for an input file that was skipped.
func NewLoadFailedWarning(file string, err error) *MergeWarning {
	return &MergeWarning{
		Category:   WarnLoadFailed,
		Message:    fmt.Sprintf("failed to load %s: %v", file, err),
		SourceFile: file,
		Severity:   severity.SeverityError,
		Context: map[string]any{
			"error": err.Error(),
		},
	}
}

// NewPathConflictWarning creates a warning for a path item key that an
// input overwrote.
func NewPathConflictWarning(path, key, file string) *MergeWarning {
	msg := fmt.Sprintf("conflicting %s at %s (overwritten by %s)", key, path, file)
	if document.IsHTTPMethod(key) {
		msg = fmt.Sprintf("duplicate operation: %s %s (overwritten by %s)", strings.ToUpper(key), path, file)
	}
	return &MergeWarning{
		Category:   WarnPathConflict,
		Path:       fmt.Sprintf("paths.%s.%s", path, key),
		Message:    msg,
		SourceFile: file,
		Severity:   severity.SeverityWarning,
		Context: map[string]any{
			"path": path,
			"key":  key,
		},
	}
}

// NewComponentConflictWarning creates a warning summarizing the conflicts one
// input caused in one component type.
func NewComponentConflictWarning(componentType string, count int, policy document.ConflictPolicy, file string) *MergeWarning {
	sev := severity.SeverityInfo
	if policy != document.PolicyKeepFirst {
		sev = severity.SeverityWarning
	}
	return &MergeWarning{
		Category:   WarnComponentConflict,
		Path:       fmt.Sprintf("components.%s", componentType),
		Message:    fmt.Sprintf("%d conflicting %s in %s resolved by %s", count, componentType, file, policy),
		SourceFile: file,
		Severity:   sev,
		Context: map[string]any{
			"component_type": componentType,
			"count":          count,
			"resolution":     string(policy),
		},
	}
}

// NewInvalidPathItemWarning creates a warning for a path item that is not a mapping.
func NewInvalidPathItemWarning(path, file string) *MergeWarning {
	return &MergeWarning{
		Category:   WarnInvalidPathItem,
		Path:       fmt.Sprintf("paths.%s", path),
		Message:    fmt.Sprintf("invalid path item at %s, skipping", path),
		SourceFile: file,
		Severity:   severity.SeverityWarning,
	}
}

// NewEmptyPathsWarning creates a warning for a merged document without paths.
func NewEmptyPathsWarning() *MergeWarning {
	return &MergeWarning{
		Category: WarnEmptyPaths,
		Path:     "paths",
		Message:  "merged spec has no paths",
		Severity: severity.SeverityWarning,
	}
}

// MergeWarnings is a collection of MergeWarning.
type MergeWarnings []*MergeWarning

// Strings returns the warning messages.
func (ws MergeWarnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		if w == nil {
			continue
		}
		result[i] = w.String()
	}
	return result
}

// ByCategory filters warnings by category.
func (ws MergeWarnings) ByCategory(cat WarningCategory) MergeWarnings {
	var result MergeWarnings
	for _, w := range ws {
		if w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}

// BySeverity filters warnings by severity.
func (ws MergeWarnings) BySeverity(sev severity.Severity) MergeWarnings {
	var result MergeWarnings
	for _, w := range ws {
		if w.Severity == sev {
			result = append(result, w)
		}
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws MergeWarnings) Summary() string {
	if len(ws) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d warning(s):\n", len(ws))
	for _, w := range ws {
		sb.WriteString("  - ")
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
