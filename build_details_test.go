package oasplit

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withBuild swaps the link-time variables for the duration of a test.
func withBuild(t *testing.T, v, c, b string) {
	t.Helper()
	oldV, oldC, oldB := version, commit, buildTime
	version, commit, buildTime = v, c, b
	t.Cleanup(func() { version, commit, buildTime = oldV, oldC, oldB })
}

func TestBuildDetails_SourceBuild(t *testing.T) {
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestBuildInfo(t *testing.T) {
	tests := []struct {
		name                    string
		version, commit, stamp  string
		wantVersion, wantCommit string
	}{
		{"source build", "dev", "unknown", "unknown", "Version:    dev", "Commit:     unknown"},
		{"release", "v0.3.1", "9f2c1ab", "2026-10-01T12:00:00Z", "Version:    v0.3.1", "Commit:     9f2c1ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, tt.version, tt.commit, tt.stamp)

			lines := strings.Split(BuildInfo(), "\n")
			if assert.Len(t, lines, 4) {
				assert.Equal(t, tt.wantVersion, lines[0])
				assert.Equal(t, tt.wantCommit, lines[1])
				assert.Equal(t, "Build Time: "+tt.stamp, lines[2])
				assert.Equal(t, "Go Version: "+runtime.Version(), lines[3])
			}
			assert.Equal(t, tt.version, Version())
		})
	}
}
