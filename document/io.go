package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/erraggy/oasplit/internal/fileutil"
	"github.com/erraggy/oasplit/oaserrors"
)

// Format is a serialization format.
type Format string

const (
	// FormatJSON is JSON with two-space indentation.
	FormatJSON Format = "json"
	// FormatYAML is block-style YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a format token to a Format. "yml" is accepted as YAML.
func ParseFormat(token string) (Format, error) {
	switch strings.ToLower(token) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", &oaserrors.UnsupportedFormatError{Format: token}
}

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := filepath.Ext(path); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", &oaserrors.UnsupportedFormatError{Path: path, Format: ext}
	}
}

// Load reads and parses the document at path from fs.
//
// The extension selects the format. Errors match oaserrors.ErrLoad.
// A document with neither an openapi nor a swagger key loads with a warning.
func Load(fs billy.Filesystem, path string, log Logger) (*Document, error) {
	log = OrNop(log)
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &oaserrors.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("document: stat %s: %w", path, err)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}

	doc, err := Parse(data, format, path, log)
	if err != nil {
		return nil, err
	}
	doc.Source = Source{Path: path, Size: info.Size(), ModTime: info.ModTime()}
	return doc, nil
}

// Parse decodes data in the given format. path is used in errors and logs only.
func Parse(data []byte, format Format, path string, log Logger) (*Document, error) {
	log = OrNop(log)
	var (
		v   any
		err error
	)
	switch format {
	case FormatJSON:
		v, err = decodeJSON(data)
	case FormatYAML:
		v, err = decodeValue(data)
	default:
		return nil, &oaserrors.UnsupportedFormatError{Path: path, Format: string(format)}
	}
	if err != nil {
		line, col := errorPosition(data, err)
		return nil, &oaserrors.ParseError{Path: path, Line: line, Column: col, Message: "invalid " + strings.ToUpper(string(format)), Cause: err}
	}
	root, ok := v.(*Map)
	if !ok {
		return nil, &oaserrors.InvalidStructureError{Path: path, Message: "root must be a mapping"}
	}

	doc := New(root)
	doc.Source.Path = path
	if _, _, ok := doc.Version(); !ok {
		log.Warn("no OpenAPI/Swagger version found in spec", "path", path)
	}
	return doc, nil
}

// Marshal serializes v, normally a *Map, in the given format.
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSONIndent(v)
	case FormatYAML:
		return marshalYAML(v)
	}
	return nil, &oaserrors.UnsupportedFormatError{Format: string(format)}
}

// Save writes doc to path on fs, creating parent directories as needed.
func Save(fs billy.Filesystem, doc *Document, path string, format Format) error {
	data, err := Marshal(doc.Root(), format)
	if err != nil {
		return fmt.Errorf("document: marshal %s: %w", path, err)
	}
	return WriteFile(fs, path, data)
}

// WriteFile writes data to path on fs, creating parent directories as needed.
func WriteFile(fs billy.Filesystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, fileutil.DirPerm); err != nil {
			return fmt.Errorf("document: create directory %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(fs, path, data, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	return nil
}
