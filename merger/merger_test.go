package merger

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/severity"
	"github.com/erraggy/oasplit/internal/testutil"
	"github.com/erraggy/oasplit/manifest"
	"github.com/erraggy/oasplit/oaserrors"
)

// spec builds a minimal input document with the given paths and schemas.
func spec(title string, paths, schemas *document.Map) *document.Document {
	root := document.MapOf(
		"openapi", "3.0.3",
		"info", document.MapOf("title", title, "version", "1.0.0"),
		"paths", paths,
	)
	if schemas != nil {
		root.Set("components", document.MapOf("schemas", schemas))
	}
	return document.New(root)
}

func op(id string) *document.Map {
	return document.MapOf("operationId", id)
}

func mergeDir(t *testing.T, fs billy.Filesystem, opts ...Option) *Result {
	t.Helper()
	m, err := New("in", append([]Option{WithFilesystem(fs)}, opts...)...)
	require.NoError(t, err)
	result, err := m.Merge(context.Background())
	require.NoError(t, err)
	return result
}

func TestNew(t *testing.T) {
	_, err := New("missing", WithFilesystem(memfs.New()))
	assert.True(t, errors.Is(err, oaserrors.ErrNotFound))

	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("in", 0o755))
	_, err = New("in", WithFilesystem(fs), WithConflictPolicy("merge"))
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = New("in", WithFilesystem(fs), WithConcurrency(0))
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestSpecFiles(t *testing.T) {
	t.Run("glob sorted", func(t *testing.T) {
		fs := memfs.New()
		for _, name := range []string{"spec_b.yaml", "spec_a.json", "spec_c.yml", "other.json"} {
			testutil.WriteDocument(t, fs, filepath.Join("in", name), spec("T", document.NewMap(), nil))
		}
		m, err := New("in", WithFilesystem(fs))
		require.NoError(t, err)

		files, err := m.SpecFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{"in/spec_a.json", "in/spec_b.yaml", "in/spec_c.yml"}, files)
	})

	t.Run("manifest order and missing entries", func(t *testing.T) {
		fs := memfs.New()
		testutil.WriteDocument(t, fs, "in/spec_z.json", spec("T", document.NewMap(), nil))
		testutil.WriteDocument(t, fs, "in/spec_a.json", spec("T", document.NewMap(), nil))
		mf := manifest.New(manifest.TypeTag, "api.yaml")
		mf.Files = []manifest.Entry{{Name: "spec_z.json"}, {Name: "spec_gone.json"}, {Name: "spec_a.json"}}
		require.NoError(t, manifest.Write(fs, "in", mf))

		log := testutil.NewRecordingLogger()
		m, err := New("in", WithFilesystem(fs), WithLogger(log))
		require.NoError(t, err)
		files, warnings, err := m.specFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{"in/spec_z.json", "in/spec_a.json"}, files)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnMissingFile, warnings[0].Category)
		assert.True(t, log.Logged("WARN", "file from mapping not found"))
	})

	t.Run("unreadable manifest falls back", func(t *testing.T) {
		fs := memfs.New()
		testutil.WriteDocument(t, fs, "in/spec_a.json", spec("T", document.NewMap(), nil))
		require.NoError(t, document.WriteFile(fs, "in/"+manifest.FileName, []byte("{broken")))

		m, err := New("in", WithFilesystem(fs))
		require.NoError(t, err)
		files, warnings, err := m.specFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{"in/spec_a.json"}, files)
		assert.Len(t, warnings.ByCategory(WarnManifestUnreadable), 1)
	})

	t.Run("no files", func(t *testing.T) {
		fs := memfs.New()
		require.NoError(t, fs.MkdirAll("in", 0o755))
		m, err := New("in", WithFilesystem(fs))
		require.NoError(t, err)

		_, err = m.SpecFiles()
		var noFiles *oaserrors.NoFilesError
		require.True(t, errors.As(err, &noFiles))
		assert.Equal(t, "in", noFiles.Dir)

		_, err = m.Merge(context.Background())
		assert.True(t, errors.Is(err, oaserrors.ErrNoFiles))
	})
}

func TestMerge_Basics(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_a.json", spec("Shop - a",
		document.MapOf("/a", document.MapOf("get", op("getA"), "post", op("postA"))),
		document.MapOf("A", document.MapOf("type", "string")),
	))
	testutil.WriteDocument(t, fs, "in/spec_b.json", spec("Shop - b",
		document.MapOf("/b", document.MapOf("get", op("getB"))),
		nil,
	))

	result := mergeDir(t, fs)

	assert.Equal(t, Statistics{
		FilesProcessed:     2,
		PathsMerged:        2,
		OperationsMerged:   3,
		ComponentConflicts: document.ConflictCounts{},
		PathConflicts:      0,
	}, result.Stats)
	title, _ := result.Document.Title()
	assert.Equal(t, "Shop", title)
	assert.Equal(t, "3.0.3", result.Document.VersionString(""))

	comps, ok := result.Document.Components()
	require.True(t, ok)
	assert.Equal(t, []string{"schemas"}, comps.Keys(), "empty types are dropped")
	assert.Empty(t, result.Warnings)
}

func TestMerge_ConflictPolicies(t *testing.T) {
	x := document.MapOf("type", "string")
	y := document.MapOf("type", "integer")
	write := func(t *testing.T) billy.Filesystem {
		fs := memfs.New()
		testutil.WriteDocument(t, fs, "in/spec_1.json", spec("T", document.MapOf("/one", document.MapOf("get", op("one"))), document.MapOf("A", x)))
		testutil.WriteDocument(t, fs, "in/spec_2.json", spec("T", document.MapOf("/two", document.MapOf("get", op("two"))), document.MapOf("A", y)))
		return fs
	}
	schemaA := func(result *Result) any {
		schemas, _ := result.Document.ComponentSection("schemas")
		v, _ := schemas.Get("A")
		return v
	}

	t.Run("keep_first", func(t *testing.T) {
		result := mergeDir(t, write(t))
		assert.True(t, document.Equal(x, schemaA(result)))
		assert.Equal(t, document.ConflictCounts{"schemas": 1}, result.Stats.ComponentConflicts)
		assert.Len(t, result.Warnings.ByCategory(WarnComponentConflict), 1)
	})

	t.Run("keep_last", func(t *testing.T) {
		log := testutil.NewRecordingLogger()
		result := mergeDir(t, write(t), WithConflictPolicy(document.PolicyKeepLast), WithLogger(log))
		assert.True(t, document.Equal(y, schemaA(result)))
		assert.Equal(t, document.ConflictCounts{"schemas": 1}, result.Stats.ComponentConflicts)
		assert.True(t, log.Logged("WARN", "overwriting conflicting component"))
	})

	t.Run("error", func(t *testing.T) {
		m, err := New("in", WithFilesystem(write(t)), WithConflictPolicy(document.PolicyError))
		require.NoError(t, err)
		_, err = m.Merge(context.Background())
		var conflict *oaserrors.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "schemas", conflict.ComponentType)
		assert.Equal(t, "A", conflict.Name)
	})
}

func TestMerge_PathConflicts(t *testing.T) {
	params := []any{document.MapOf("name", "id", "in", "path", "required", true)}
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_1.json", spec("T",
		document.MapOf("/x/{id}", document.MapOf("parameters", params, "get", op("first"))), nil))
	testutil.WriteDocument(t, fs, "in/spec_2.json", spec("T",
		document.MapOf("/x/{id}", document.MapOf("parameters", params, "get", op("second"), "put", op("put"))), nil))

	result := mergeDir(t, fs)

	assert.Equal(t, 1, result.Stats.PathsMerged)
	assert.Equal(t, 3, result.Stats.OperationsMerged)
	assert.Equal(t, 1, result.Stats.PathConflicts, "equal shared parameters are not a conflict")

	paths, _ := result.Document.Paths()
	item, _ := paths.GetMap("/x/{id}")
	get, _ := item.GetMap("get")
	id, _ := get.GetString("operationId")
	assert.Equal(t, "second", id, "operations are last-write-wins")

	conflicts := result.Warnings.ByCategory(WarnPathConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Message, "GET /x/{id}")
}

func TestMerge_PathConflictsCountOperationsOnly(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_1.json", spec("T",
		document.MapOf("/x", document.MapOf("summary", "first", "get", op("a"))), nil))
	testutil.WriteDocument(t, fs, "in/spec_2.json", spec("T",
		document.MapOf("/x", document.MapOf("summary", "second", "post", op("b"))), nil))

	result := mergeDir(t, fs)

	assert.Zero(t, result.Stats.PathConflicts)
	assert.Equal(t, 2, result.Stats.OperationsMerged)

	conflicts := result.Warnings.ByCategory(WarnPathConflict)
	require.Len(t, conflicts, 1, "a differing summary still warns")
	assert.Equal(t, "summary", conflicts[0].Context["key"])
}

func TestMerge_RootProperties(t *testing.T) {
	fs := memfs.New()
	first := spec("T", document.MapOf("/a", document.MapOf("get", op("a"))), nil)
	first.Root().Set("servers", []any{document.MapOf("url", "https://a")})
	first.Root().Set("tags", []any{document.MapOf("name", "a")})
	first.Root().Set("security", []any{document.MapOf("k", []any{})})

	second := spec("T", document.MapOf("/b", document.MapOf("get", op("b"))), nil)
	info, _ := second.Info()
	info.Set("description", "from second")
	info.Set("x-owner", "team")
	info.Set(document.ExtSplitPart, "b")
	second.Root().Set("servers", []any{document.MapOf("url", "https://a"), document.MapOf("url", "https://b")})
	second.Root().Set("tags", []any{document.MapOf("name", "a", "description", "backfilled"), document.MapOf("name", "b")})
	second.Root().Set("security", []any{document.MapOf("other", []any{})})

	testutil.WriteDocument(t, fs, "in/spec_1.yaml", first)
	testutil.WriteDocument(t, fs, "in/spec_2.yaml", second)

	result := mergeDir(t, fs)
	doc := result.Document

	servers, _ := doc.Servers()
	assert.Len(t, servers, 2)
	assert.Equal(t, []string{"a", "b"}, doc.TagNames())
	tags, _ := doc.Tags()
	desc, _ := tags[0].(*document.Map).GetString("description")
	assert.Equal(t, "backfilled", desc)
	security, _ := doc.Security()
	require.Len(t, security, 1)
	assert.True(t, security[0].(*document.Map).Has("k"))

	mergedInfo, _ := doc.Info()
	got, _ := mergedInfo.GetString("description")
	assert.Equal(t, "from second", got)
	assert.True(t, mergedInfo.Has("x-owner"))
	assert.False(t, mergedInfo.Has(document.ExtSplitPart))
}

func TestMerge_SwaggerVersion(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_a.json", document.New(document.MapOf(
		"swagger", "2.0",
		"info", document.MapOf("title", "Old", "version", "1"),
		"paths", document.MapOf("/a", document.MapOf("get", op("a"))),
	)))

	result := mergeDir(t, fs)
	root := result.Document.Root()
	assert.Equal(t, "swagger", root.Keys()[0])
	assert.False(t, root.Has("openapi"))
}

func TestMerge_SkipsUnloadableFiles(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_b.json", spec("Second - b", document.MapOf("/b", document.MapOf("get", op("b"))), nil))
	require.NoError(t, document.WriteFile(fs, "in/spec_a.json", []byte(`{"openapi": `)))

	result := mergeDir(t, fs)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, []string{"in/spec_a.json", "in/spec_b.json"}, result.Files)
	failed := result.Warnings.ByCategory(WarnLoadFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "in/spec_a.json", failed[0].SourceFile)

	title, _ := result.Document.Title()
	assert.Equal(t, "Second", title, "first loaded file supplies info")
}

func TestMerge_EmptyPaths(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_a.json", spec("T", document.NewMap(), nil))

	result := mergeDir(t, fs)
	empty := result.Warnings.ByCategory(WarnEmptyPaths)
	require.Len(t, empty, 1)
	assert.Equal(t, severity.SeverityWarning, empty[0].Severity)
	assert.False(t, result.Document.Root().Has("components"))
	assert.Contains(t, ValidateResult(result), "'paths' is empty")
}

func TestMerge_Concurrency(t *testing.T) {
	fs := memfs.New()
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		schemas := document.MapOf("Shared", document.MapOf("n", i))
		testutil.WriteDocument(t, fs, "in/spec_"+name+".json",
			spec("T - "+name, document.MapOf("/"+name, document.MapOf("get", op(name))), schemas))
	}

	sequential := mergeDir(t, fs)
	parallel := mergeDir(t, fs, WithConcurrency(4))

	seqJSON, err := document.Marshal(sequential.Document.Root(), document.FormatJSON)
	require.NoError(t, err)
	parJSON, err := document.Marshal(parallel.Document.Root(), document.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(seqJSON), string(parJSON))
	assert.Equal(t, sequential.Stats, parallel.Stats)
	assert.Equal(t, 4, parallel.Stats.ComponentConflicts["schemas"])
}

func TestMerge_CanceledContext(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_a.json", spec("T", document.MapOf("/a", document.MapOf("get", op("a"))), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, n := range []int{1, 3} {
		m, err := New("in", WithFilesystem(fs), WithConcurrency(n))
		require.NoError(t, err)
		_, err = m.Merge(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestStatisticsJSON(t *testing.T) {
	data, err := json.Marshal(Statistics{
		FilesProcessed:     2,
		PathsMerged:        3,
		OperationsMerged:   4,
		ComponentConflicts: document.ConflictCounts{"schemas": 1},
		PathConflicts:      1,
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"files_processed":2,"paths_merged":3,"operations_merged":4,"component_conflicts":{"schemas":1},"path_conflicts":1}`,
		string(data))
}

func TestWriteResult(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "in/spec_a.json", spec("T", document.MapOf("/a", document.MapOf("get", op("a"))), nil))
	m, err := New("in", WithFilesystem(fs))
	require.NoError(t, err)
	result, err := m.Merge(context.Background())
	require.NoError(t, err)

	for _, path := range []string{"out/merged.yaml", "out/merged.json", "out/merged.txt"} {
		require.NoError(t, m.WriteResult(result, path, ""))
	}
	data, err := document.Marshal(result.Document.Root(), document.FormatYAML)
	require.NoError(t, err)
	written, err := util.ReadFile(fs, "out/merged.yaml")
	require.NoError(t, err)
	assert.Equal(t, string(data), string(written))

	_, err = document.Load(fs, "out/merged.json", nil)
	assert.NoError(t, err)

	err = m.WriteResult(result, "out/merged.json", document.Format("xml"))
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedFormat))
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, document.FormatYAML, OutputFormat("a.yaml"))
	assert.Equal(t, document.FormatYAML, OutputFormat("a.YML"))
	assert.Equal(t, document.FormatJSON, OutputFormat("a.json"))
	assert.Equal(t, document.FormatJSON, OutputFormat("merged"))
}
