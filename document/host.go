package document

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// HostFS returns the operating system filesystem rooted at the filesystem
// root. Relative paths given to it do not follow the working directory, so
// pass them through HostPath first.
func HostFS() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// HostPath resolves path against the working directory.
func HostPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("document: resolve %s: %w", path, err)
	}
	return abs, nil
}

// LoadFile loads the document at path from the host filesystem.
func LoadFile(path string, log Logger) (*Document, error) {
	abs, err := HostPath(path)
	if err != nil {
		return nil, err
	}
	return Load(HostFS(), abs, log)
}
