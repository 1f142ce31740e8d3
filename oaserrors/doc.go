// Package oaserrors provides structured error types for the oasplit library.
//
// Import path: github.com/erraggy/oasplit/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors.
//
// # Error Types
//
//   - [NotFoundError]: a document or directory does not exist
//   - [ParseError]: JSON/YAML syntax failures
//   - [UnsupportedFormatError]: an extension or format token other than JSON/YAML
//   - [InvalidStructureError]: a document root that is not a mapping
//   - [ConflictError]: differing component definitions under the "error" policy
//   - [NoFilesError]: a merge that found nothing to merge
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is().
// The four load failures also match [ErrLoad]:
//
//	doc, err := document.Load(fs, "api.yaml", nil)
//	if errors.Is(err, oaserrors.ErrLoad) {
//	    // any failure to read the document
//	}
//
// Extract details with errors.As():
//
//	var conflict *oaserrors.ConflictError
//	if errors.As(err, &conflict) {
//	    fmt.Println(conflict.ComponentType, conflict.Name)
//	}
package oaserrors
