package merger

import (
	"slices"
	"strings"

	"github.com/erraggy/oasplit/document"
)

// titleSeparator joins the original title and the split label.
const titleSeparator = " - "

// rootProperties are the top-level keys merged besides version, info,
// components, and paths.
var rootProperties = []string{"servers", "security", "tags", "externalDocs"}

// state is the document under construction and its running statistics.
// It is only touched by the combining loop.
type state struct {
	root     *document.Map
	paths    *document.Map
	comps    *document.Map
	stats    Statistics
	warnings MergeWarnings
	policy   document.ConflictPolicy
	log      document.Logger
}

func newState(policy document.ConflictPolicy, log document.Logger) *state {
	paths := document.NewMap()
	comps := document.NewMap()
	return &state{
		root: document.MapOf(
			"openapi", "3.1.0",
			"info", document.MapOf("title", "Merged API", "version", "1.0.0"),
			"paths", paths,
			"components", comps,
		),
		paths:  paths,
		comps:  comps,
		stats:  Statistics{ComponentConflicts: document.ConflictCounts{}},
		policy: policy,
		log:    log,
	}
}

func (st *state) warn(w *MergeWarning) {
	st.warnings = append(st.warnings, w)
}

// mergeDocument folds one loaded input into the result. The first
// successfully loaded input decides the version and info.
func (st *state) mergeDocument(doc *document.Document, file string) error {
	first := st.stats.FilesProcessed == 0
	if first {
		st.mergeVersion(doc)
	}
	st.mergeInfo(doc, first)
	st.mergeRootProperties(doc)
	if err := st.mergeComponents(doc, file); err != nil {
		return err
	}
	st.mergePaths(doc, file)
	st.stats.FilesProcessed++
	return nil
}

// mergeVersion copies the input's version key. A swagger input replaces the
// default openapi key in place.
func (st *state) mergeVersion(doc *document.Document) {
	key, value, ok := doc.Version()
	if !ok {
		return
	}
	if key == "openapi" {
		st.root.Set(key, value)
		return
	}
	root := document.MapOf(key, value)
	for k, v := range st.root.All() {
		if k != "openapi" {
			root.Set(k, v)
		}
	}
	st.root = root
}

func (st *state) mergeInfo(doc *document.Document, first bool) {
	src, ok := doc.Info()
	if !ok {
		return
	}

	if first {
		info := src.Clone()
		info.Delete(document.ExtSplitPart)
		info.Delete(document.ExtSplitTimestamp)
		if title, ok := info.GetString("title"); ok {
			if before, _, found := strings.Cut(title, titleSeparator); found {
				info.Set("title", before)
			}
		}
		st.root.Set("info", info)
		return
	}

	info, _ := st.root.GetMap("info")
	if desc, ok := src.Get("description"); ok && !info.Has("description") {
		info.Set("description", desc)
	}
	for key, value := range src.All() {
		if !strings.HasPrefix(key, "x-") || key == document.ExtSplitPart || key == document.ExtSplitTimestamp {
			continue
		}
		if !info.Has(key) {
			info.Set(key, value)
		}
	}
}

func (st *state) mergeRootProperties(doc *document.Document) {
	src := doc.Root()
	for _, prop := range rootProperties {
		value, ok := src.Get(prop)
		if !ok {
			continue
		}
		existing, ok := st.root.Get(prop)
		if !ok {
			if list, isList := value.([]any); isList {
				value = slices.Clone(list)
			}
			st.root.Set(prop, value)
			continue
		}

		switch prop {
		case "servers":
			st.root.Set(prop, mergeServers(existing, value))
		case "tags":
			st.root.Set(prop, mergeTags(existing, value))
		}
	}
}

// mergeServers appends the incoming servers not already present by value.
func mergeServers(existing, incoming any) any {
	have, ok := existing.([]any)
	add, ok2 := incoming.([]any)
	if !ok || !ok2 {
		return existing
	}
	seen := make(map[string]bool, len(have))
	for _, s := range have {
		seen[document.Fingerprint(s)] = true
	}
	for _, s := range add {
		fp := document.Fingerprint(s)
		if !seen[fp] {
			have = append(have, s)
			seen[fp] = true
		}
	}
	return have
}

// mergeTags appends the incoming tags whose name is new. A known tag without
// a description takes the incoming one; differing descriptions keep the first.
func mergeTags(existing, incoming any) any {
	have, ok := existing.([]any)
	add, ok2 := incoming.([]any)
	if !ok || !ok2 {
		return existing
	}
	byName := make(map[string]*document.Map, len(have))
	for _, t := range have {
		if tm, isMap := t.(*document.Map); isMap {
			if name, hasName := tm.GetString("name"); hasName {
				byName[name] = tm
			}
		}
	}
	for _, t := range add {
		tm, isMap := t.(*document.Map)
		if !isMap {
			continue
		}
		name, hasName := tm.GetString("name")
		if !hasName {
			continue
		}
		known, found := byName[name]
		if !found {
			have = append(have, tm)
			byName[name] = tm
			continue
		}
		if desc, hasDesc := tm.Get("description"); hasDesc && !known.Has("description") {
			known.Set("description", desc)
		}
	}
	return have
}

func (st *state) mergeComponents(doc *document.Document, file string) error {
	src, ok := doc.Components()
	if !ok {
		return nil
	}
	counts, err := document.MergeComponents(st.comps, src, st.policy, st.log)
	nonZero := counts.NonZero()
	st.stats.ComponentConflicts.Add(nonZero)
	for _, typ := range document.ComponentTypes {
		if n := nonZero[typ]; n > 0 {
			st.warn(NewComponentConflictWarning(typ, n, st.policy, file))
		}
	}
	return err
}

// mergePaths copies every path item key of doc into the result. Operations
// always overwrite, counting a conflict when the method already exists.
// Other keys, such as shared parameters, overwrite as well and warn when
// they differ, but only operations count toward PathConflicts.
func (st *state) mergePaths(doc *document.Document, file string) {
	src, ok := doc.Paths()
	if !ok {
		return
	}
	for path, raw := range src.All() {
		item, ok := raw.(*document.Map)
		if !ok {
			st.log.Warn("invalid path item, skipping", "path", path, "file", file)
			st.warn(NewInvalidPathItemWarning(path, file))
			continue
		}

		target, ok := st.paths.GetMap(path)
		if !ok {
			target = document.NewMap()
			st.paths.Set(path, target)
			st.stats.PathsMerged++
		}

		for key, value := range item.All() {
			existing, found := target.Get(key)
			isOp := document.IsHTTPMethod(key)
			if found && (isOp || !document.Equal(existing, value)) {
				if isOp {
					st.stats.PathConflicts++
				}
				st.log.Warn("duplicate path item key", "path", path, "key", key, "file", file)
				st.warn(NewPathConflictWarning(path, key, file))
			}
			target.Set(key, value)
			if isOp {
				st.stats.OperationsMerged++
			}
		}
	}
}

// clean drops empty component types, drops components when nothing is left,
// and warns when the result has no paths.
func (st *state) clean() {
	for _, typ := range st.comps.Keys() {
		if section, ok := st.comps.GetMap(typ); ok && section.Len() == 0 {
			st.comps.Delete(typ)
		}
	}
	if st.comps.Len() == 0 {
		st.root.Delete("components")
	}
	if st.paths.Len() == 0 {
		st.log.Warn("merged spec has no paths")
		st.warn(NewEmptyPathsWarning())
	}
}
