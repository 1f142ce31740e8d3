package oasplit

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/erraggy/oasplit.version=..." at release.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the release version, or "dev" for source builds.
// It is reported by the version command and as the MCP server version.
func Version() string {
	return version
}

// Commit returns the short git hash the binary was built from, or "unknown".
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown".
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version.
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo renders all build metadata as aligned "Label: value" lines.
func BuildInfo() string {
	return fmt.Sprintf("Version:    %s\nCommit:     %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
