package splitter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/pathutil"
	"github.com/erraggy/oasplit/manifest"
)

// SplitByTags writes one document per tag group and returns the manifest.
func (s *Splitter) SplitByTags() (*manifest.Manifest, error) {
	s.log.Info("splitting by tags")
	return s.write(manifest.TypeTag, s.GroupByTag(), func(_ int, g Group) string {
		return "spec_" + pathutil.SanitizeLabel(g.Label) + ".json"
	})
}

// SplitByPathPrefix writes one document per path prefix group, with at most
// maxPerFile operations each, and returns the manifest.
func (s *Splitter) SplitByPathPrefix(maxPerFile int) (*manifest.Manifest, error) {
	s.log.Info("splitting by path prefix", "max_operations", maxPerFile)
	groups, err := s.GroupByPathPrefix(maxPerFile)
	if err != nil {
		return nil, fmt.Errorf("splitter: %w", err)
	}
	return s.write(manifest.TypePath, groups, func(_ int, g Group) string {
		return "spec_" + pathutil.SanitizeLabel(g.Label) + ".json"
	})
}

// SplitBySize writes documents of operationsPerFile operations each, named
// spec_part001.json, spec_part002.json, and so on, and returns the manifest.
func (s *Splitter) SplitBySize(operationsPerFile int) (*manifest.Manifest, error) {
	s.log.Info("splitting by size", "operations_per_file", operationsPerFile)
	groups, err := s.GroupBySize(operationsPerFile)
	if err != nil {
		return nil, fmt.Errorf("splitter: %w", err)
	}
	return s.write(manifest.TypeSize, groups, func(i int, _ Group) string {
		return fmt.Sprintf("spec_part%03d.json", i+1)
	})
}

// Split runs the strategy named by method. maxOperations is ignored for
// MethodTags.
func (s *Splitter) Split(method Method, maxOperations int) (*manifest.Manifest, error) {
	switch method {
	case MethodTags:
		return s.SplitByTags()
	case MethodPath:
		return s.SplitByPathPrefix(maxOperations)
	case MethodSize:
		return s.SplitBySize(maxOperations)
	}
	_, err := ParseMethod(string(method))
	return nil, fmt.Errorf("splitter: %w", err)
}

// write saves one document per group and then the manifest. With no groups
// nothing is written and an empty manifest without a source is returned.
func (s *Splitter) write(t manifest.Type, groups []Group, fileName func(int, Group) string) (*manifest.Manifest, error) {
	if len(groups) == 0 {
		s.log.Warn("no endpoints found to split", "path", s.specPath)
		return manifest.New(t, ""), nil
	}

	m := manifest.New(t, s.specPath)
	used := make(map[string]bool, len(groups))
	for i, g := range groups {
		base := fileName(i, g)
		name := uniqueName(base, used)
		if name != base {
			s.log.Warn("file name already used, adding suffix", "label", g.Label, "file", base, "renamed", name)
		}
		mini := s.CreateMiniSpec(g.Endpoints, g.Label, s.includeComponents)
		if err := document.Save(s.fs, mini, filepath.Join(s.outputDir, name), document.FormatJSON); err != nil {
			return nil, fmt.Errorf("splitter: %w", err)
		}

		entry := manifest.Entry{
			Name:          name,
			Label:         g.Label,
			EndpointCount: len(g.Endpoints),
			PathCount:     g.PathCount(),
		}
		if t == manifest.TypeSize {
			entry.Part = i + 1
		}
		m.Files = append(m.Files, entry)
		s.log.Info("created split file", "file", name, "operations", len(g.Endpoints))
	}

	if err := manifest.Write(s.fs, s.outputDir, m); err != nil {
		return nil, fmt.Errorf("splitter: %w", err)
	}
	s.log.Info("split complete", "files", len(m.Files), "output_dir", s.outputDir)
	return m, nil
}

// uniqueName returns name, or name with a numeric suffix before the
// extension when an earlier group already took it. Distinct labels can
// sanitize to the same file name.
func uniqueName(name string, used map[string]bool) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	used[candidate] = true
	return candidate
}
