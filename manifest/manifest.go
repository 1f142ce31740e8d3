// Package manifest reads and writes split_mapping.json, the record a split
// run leaves next to the documents it produced.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/oaserrors"
)

// FileName is the manifest's name inside a split output directory.
const FileName = "split_mapping.json"

// Type identifies the strategy that produced a split.
type Type string

const (
	TypeTag  Type = "tag-based"
	TypePath Type = "path-based"
	TypeSize Type = "size-based"
)

// labelKey returns the JSON key under which an entry's group label is stored.
func (t Type) labelKey() string {
	switch t {
	case TypeTag:
		return "tag"
	case TypeSize:
		return "part"
	default:
		return "prefix"
	}
}

// Manifest describes one split run.
type Manifest struct {
	Type   Type
	Source string
	Files  []Entry
}

// Entry describes one produced document.
type Entry struct {
	Name string
	// Label is the tag or path prefix; size-based entries use Part instead.
	Label         string
	Part          int
	EndpointCount int
	PathCount     int
}

// New returns an empty manifest for a split of source.
func New(t Type, source string) *Manifest {
	return &Manifest{Type: t, Source: source, Files: []Entry{}}
}

// Names returns the file names in entry order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Files))
	for i, f := range m.Files {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON writes {type, files, source}. The label key of each entry is
// "tag", "prefix", or "part" depending on Type, and source is omitted when
// empty.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return m.toMap().MarshalJSON()
}

func (m *Manifest) toMap() *document.Map {
	files := make([]any, 0, len(m.Files))
	key := m.Type.labelKey()
	for _, f := range m.Files {
		entry := document.MapOf("name", f.Name)
		if m.Type == TypeSize {
			entry.Set(key, f.Part)
		} else {
			entry.Set(key, f.Label)
		}
		entry.Set("endpoint_count", f.EndpointCount)
		entry.Set("path_count", f.PathCount)
		files = append(files, entry)
	}

	out := document.MapOf("type", string(m.Type), "files", files)
	if m.Source != "" {
		out.Set("source", m.Source)
	}
	return out
}

type rawEntry struct {
	Name          string `json:"name"`
	Tag           string `json:"tag"`
	Prefix        string `json:"prefix"`
	Part          int    `json:"part"`
	EndpointCount int    `json:"endpoint_count"`
	PathCount     int    `json:"path_count"`
}

type rawManifest struct {
	Type   Type        `json:"type"`
	Source string      `json:"source"`
	Files  *[]rawEntry `json:"files"`
}

// UnmarshalJSON reads any of the three manifest shapes.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Files == nil {
		return errors.New(`manifest has no "files" list`)
	}
	m.Type = raw.Type
	m.Source = raw.Source
	m.Files = make([]Entry, 0, len(*raw.Files))
	for _, f := range *raw.Files {
		label := f.Tag
		if label == "" {
			label = f.Prefix
		}
		m.Files = append(m.Files, Entry{
			Name:          f.Name,
			Label:         label,
			Part:          f.Part,
			EndpointCount: f.EndpointCount,
			PathCount:     f.PathCount,
		})
	}
	return nil
}

// Write stores m as dir/split_mapping.json.
func Write(fs billy.Filesystem, dir string, m *Manifest) error {
	data, err := document.Marshal(m.toMap(), document.FormatJSON)
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	return document.WriteFile(fs, filepath.Join(dir, FileName), data)
}

// Read loads dir/split_mapping.json. A missing manifest yields an
// *oaserrors.NotFoundError; an unreadable one yields an *oaserrors.ParseError.
func Read(fs billy.Filesystem, dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &oaserrors.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "invalid manifest", Cause: err}
	}
	return &m, nil
}
