package merger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/testutil"
	"github.com/erraggy/oasplit/splitter"
)

// operationSet maps "METHOD path" to the operation, failing on duplicates.
func operationSet(t *testing.T, doc *document.Document) map[string]any {
	t.Helper()
	out := make(map[string]any)
	for _, ep := range document.ListOperations(doc, nil) {
		key := ep.Method + " " + ep.Path
		require.NotContains(t, out, key)
		out[key] = ep.Operation
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	sources := map[string]*document.Document{
		"pet store": testutil.NewPetStoreDocument(),
		"bulk":      testutil.NewBulkDocument("users", 47, "get", "put", "delete"),
	}
	methods := []splitter.Method{splitter.MethodPath, splitter.MethodSize}

	for name, source := range sources {
		for _, method := range methods {
			t.Run(name+"/"+string(method), func(t *testing.T) {
				fs := memfs.New()
				testutil.WriteDocument(t, fs, "api.json", source)
				s, err := splitter.New("api.json", splitter.WithFilesystem(fs), splitter.WithOutputDir("in"))
				require.NoError(t, err)
				_, err = s.Split(method, 4)
				require.NoError(t, err)

				result := mergeDir(t, fs)

				want := operationSet(t, s.Document())
				got := operationSet(t, result.Document)
				require.Len(t, got, len(want))
				for key, op := range want {
					assert.True(t, document.Equal(op, got[key]), "%s differs after round trip", key)
				}
				assert.Zero(t, result.Stats.PathConflicts)
				assert.Empty(t, result.Stats.ComponentConflicts)

				wantTitle, _ := s.Document().Title()
				gotTitle, _ := result.Document.Title()
				assert.Equal(t, wantTitle, gotTitle)
			})
		}
	}
}

func TestRoundTrip_TagSplit(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "api.yaml", testutil.NewPetStoreDocument())
	s, err := splitter.New("api.yaml", splitter.WithFilesystem(fs), splitter.WithOutputDir("in"))
	require.NoError(t, err)
	_, err = s.SplitByTags()
	require.NoError(t, err)

	result := mergeDir(t, fs)

	want := operationSet(t, s.Document())
	got := operationSet(t, result.Document)
	assert.Len(t, got, len(want), "every operation appears at least once")
	assert.Equal(t, 1, result.Stats.PathConflicts, "deletePet is in both the pets and store files")
	assert.Equal(t, []string{"pets", "store"}, result.Document.TagNames())
}

func TestRoundTrip_TitleSuffix(t *testing.T) {
	fs := memfs.New()
	testutil.WriteDocument(t, fs, "api.yaml", testutil.NewPetStoreDocument())
	s, err := splitter.New("api.yaml", splitter.WithFilesystem(fs), splitter.WithOutputDir("split"))
	require.NoError(t, err)

	pets := s.GroupByTag()[0]
	require.Equal(t, "pets", pets.Label)
	mini := s.CreateMiniSpec(pets.Endpoints, pets.Label, true)
	title, _ := mini.Title()
	require.Equal(t, "Pet Store - pets", title)

	testutil.WriteDocument(t, fs, "in/spec_pets.json", mini)
	result := mergeDir(t, fs)

	title, _ = result.Document.Title()
	assert.Equal(t, "Pet Store", title)
	info, _ := result.Document.Info()
	assert.False(t, info.Has(document.ExtSplitPart))
	assert.False(t, info.Has(document.ExtSplitTimestamp))
}

func TestRoundTrip_MergeIsIdempotentForComponents(t *testing.T) {
	doc := testutil.NewPetStoreDocument()
	for _, policy := range []document.ConflictPolicy{document.PolicyKeepFirst, document.PolicyKeepLast, document.PolicyError} {
		t.Run(string(policy), func(t *testing.T) {
			fs := memfs.New()
			testutil.WriteDocument(t, fs, "in/spec_1.json", doc)
			testutil.WriteDocument(t, fs, "in/spec_2.json", doc)

			m, err := New("in", WithFilesystem(fs), WithConflictPolicy(policy))
			require.NoError(t, err)
			result, err := m.Merge(context.Background())
			require.NoError(t, err)

			assert.Empty(t, result.Stats.ComponentConflicts)
			want, _ := doc.Components()
			got, _ := result.Document.Components()
			assert.True(t, document.Equal(want, got))
		})
	}
}

func TestRoundTrip_KeepsFloatValues(t *testing.T) {
	source := testutil.NewPetStoreDocument()
	paths, _ := source.Paths()
	pets, _ := paths.GetMap("/pets")
	list, _ := pets.GetMap("get")
	list.Set("x-ratio", 1.0)
	schemas, _ := source.ComponentSection("schemas")
	pet, _ := schemas.GetMap("Pet")
	props, _ := pet.GetMap("properties")
	id, _ := props.GetMap("id")
	id.Set("minimum", 0.0)

	fs := memfs.New()
	testutil.WriteDocument(t, fs, "api.json", source)
	s, err := splitter.New("api.json", splitter.WithFilesystem(fs), splitter.WithOutputDir("in"))
	require.NoError(t, err)
	_, err = s.Split(splitter.MethodSize, 1)
	require.NoError(t, err)

	data, err := util.ReadFile(fs, "in/spec_part001.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x-ratio": 1.0`)
	assert.Contains(t, string(data), `"minimum": 0.0`)

	result := mergeDir(t, fs, WithConflictPolicy(document.PolicyError))
	assert.Empty(t, result.Stats.ComponentConflicts)

	want := operationSet(t, s.Document())
	got := operationSet(t, result.Document)
	for key, op := range want {
		assert.True(t, document.Equal(op, got[key]), "%s differs after round trip", key)
	}
	ratio, _ := got["get /pets"].(*document.Map).Get("x-ratio")
	assert.IsType(t, float64(0), ratio)

	merged, _ := result.Document.ComponentSection("schemas")
	mergedPet, _ := merged.GetMap("Pet")
	mergedProps, _ := mergedPet.GetMap("properties")
	mergedID, _ := mergedProps.GetMap("id")
	minimum, _ := mergedID.Get("minimum")
	assert.IsType(t, float64(0), minimum)
}

func TestRoundTrip_HostFilesystem(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteDocument(t, document.HostFS(), filepath.Join(dir, "api.json"), testutil.NewPetStoreDocument())

	s, err := splitter.New("api.json")
	require.NoError(t, err)
	m, err := s.Split(splitter.MethodPath, splitter.DefaultMaxOperations)
	require.NoError(t, err)
	require.NotEmpty(t, m.Files)
	for _, f := range m.Files {
		_, err := os.Stat(filepath.Join(dir, splitter.DefaultOutputDir, f.Name))
		assert.NoError(t, err, f.Name)
	}

	mg, err := New(splitter.DefaultOutputDir)
	require.NoError(t, err)
	result, err := mg.Merge(context.Background())
	require.NoError(t, err)
	require.NoError(t, mg.WriteResult(result, DefaultOutputPath, ""))

	merged, err := document.LoadFile(filepath.Join(dir, DefaultOutputPath), nil)
	require.NoError(t, err)
	assert.Len(t, operationSet(t, merged), len(operationSet(t, s.Document())))
}
