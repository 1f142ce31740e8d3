package pathutil

import (
	"regexp"
	"strings"
)

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// FirstSegment returns the first segment of an OpenAPI path after trimming
// leading and trailing slashes. It returns "" for "/" and "".
func FirstSegment(path string) string {
	first, _, _ := strings.Cut(strings.Trim(path, "/"), "/")
	return first
}

// Depth returns the number of non-empty segments of path. "/" has depth 0.
func Depth(path string) int {
	depth := 0
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}

// HasParams reports whether path contains a template parameter.
func HasParams(path string) bool {
	return strings.Contains(path, "{")
}
