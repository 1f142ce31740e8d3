// Package pathutil provides path and reference helpers shared by the
// splitter, merger, analyzer, and command-line tools.
//
// # URL Templates
//
// [FirstSegment] extracts the grouping key of an OpenAPI path and
// [PathParamRegex] finds its template parameters:
//
//	pathutil.FirstSegment("/users/{id}/orders")  // "users"
//	pathutil.FirstSegment("/")                   // ""
//
// # Component References
//
// [ComponentRef] builds local references of the form "#/components/{type}/{name}":
//
//	ref := pathutil.ComponentRef("schemas", "Pet")  // "#/components/schemas/Pet"
//
// # File Names and Output Paths
//
// [SanitizeLabel] turns a group label into a file-name fragment, and
// [SanitizeOutputPath] validates output file paths supplied by users:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // symlink or unresolvable path
//	}
package pathutil
