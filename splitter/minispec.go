package splitter

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasplit/document"
)

// CreateMiniSpec builds a standalone document holding only endpoints.
//
// The result copies the source's version, info, servers, and security, keeps
// only the tags the endpoints use, and, when includeComponents is set, carries
// every non-empty component type of the source. info.title gets " - {label}"
// appended and info is stamped with the split label and the source's
// modification time. Path items keep their non-operation keys, such as shared
// parameters.
func (s *Splitter) CreateMiniSpec(endpoints []document.Endpoint, label string, includeComponents bool) *document.Document {
	src := s.doc.Root()
	mini := document.NewMap()

	if key, value, ok := s.doc.Version(); ok {
		mini.Set(key, value)
	} else {
		mini.Set("openapi", "3.1.0")
	}

	info, ok := s.doc.Info()
	if ok {
		info = info.Clone()
	} else {
		info = document.MapOf("title", "API", "version", "1.0.0")
	}
	mini.Set("info", info)

	paths := document.NewMap()
	mini.Set("paths", paths)

	if includeComponents && document.HasAnyComponents(s.common) {
		comps := document.NewMap()
		for typ, section := range s.common.All() {
			if m, ok := section.(*document.Map); ok && m.Len() > 0 {
				comps.Set(typ, m)
			}
		}
		mini.Set("components", comps)
	}

	for _, key := range []string{"servers", "security"} {
		if v, ok := src.Get(key); ok {
			if list, isList := v.([]any); isList {
				v = slices.Clone(list)
			}
			mini.Set(key, v)
		}
	}

	if defined, ok := s.doc.Tags(); ok {
		if used := usedTags(endpoints); len(used) > 0 {
			tags := make([]any, 0, len(used))
			for _, t := range defined {
				tm, isMap := t.(*document.Map)
				if !isMap {
					continue
				}
				if name, _ := tm.GetString("name"); used[name] {
					tags = append(tags, t)
				}
			}
			mini.Set("tags", tags)
		}
	}

	srcPaths, _ := s.doc.Paths()
	for _, ep := range endpoints {
		item, ok := paths.GetMap(ep.Path)
		if !ok {
			item = pathItemShell(srcPaths, ep.Path)
			paths.Set(ep.Path, item)
		}
		item.Set(ep.Method, ep.Operation)
	}

	title := "API"
	if v, ok := info.Get("title"); ok {
		title = fmt.Sprint(v)
	}
	info.Set("title", title+" - "+label)
	info.Set(document.ExtSplitPart, label)
	info.Set(document.ExtSplitTimestamp, s.stamp)

	return document.New(mini)
}

// pathItemShell returns a new path item holding the non-operation keys of
// the source item at path.
func pathItemShell(srcPaths *document.Map, path string) *document.Map {
	shell := document.NewMap()
	src, ok := srcPaths.GetMap(path)
	if !ok {
		return shell
	}
	for k, v := range src.All() {
		if !document.IsHTTPMethod(k) {
			shell.Set(k, v)
		}
	}
	return shell
}

func usedTags(endpoints []document.Endpoint) map[string]bool {
	used := make(map[string]bool)
	for _, ep := range endpoints {
		for _, tag := range document.OperationTags(ep.Operation) {
			used[tag] = true
		}
	}
	return used
}
