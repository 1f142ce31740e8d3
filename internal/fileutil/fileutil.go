package fileutil

import "os"

// OwnerReadWrite is the file permission mode for analysis reports, which
// may describe private API surface (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for split documents, manifests,
// and merged output.
const ReadableByAll os.FileMode = 0o644

// DirPerm is the permission mode for output directories created on demand.
const DirPerm os.FileMode = 0o755
