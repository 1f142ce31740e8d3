package merger

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/manifest"
	"github.com/erraggy/oasplit/oaserrors"
)

const (
	// DefaultInputDir is the directory merged when none is given.
	DefaultInputDir = "split_specs"
	// DefaultOutputPath is where the CLI writes the merged document.
	DefaultOutputPath = "merged_spec.json"
)

// specPatterns are the file names considered when no manifest is available.
var specPatterns = []string{"spec_*.json", "spec_*.yaml", "spec_*.yml"}

// Option is a function that configures a Merger
type Option func(*mergeConfig) error

type mergeConfig struct {
	fs          billy.Filesystem
	log         document.Logger
	policy      document.ConflictPolicy
	concurrency int
}

// WithFilesystem reads inputs through fs. Defaults to the host filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(cfg *mergeConfig) error {
		if fs == nil {
			return &oaserrors.ConfigError{Option: "filesystem", Message: "must not be nil"}
		}
		cfg.fs = fs
		return nil
	}
}

// WithLogger sets the logger for warnings and progress messages.
func WithLogger(log document.Logger) Option {
	return func(cfg *mergeConfig) error {
		cfg.log = document.OrNop(log)
		return nil
	}
}

// WithConflictPolicy sets how differing components with the same name are
// resolved. Defaults to document.PolicyKeepFirst.
func WithConflictPolicy(policy document.ConflictPolicy) Option {
	return func(cfg *mergeConfig) error {
		if !document.IsValidPolicy(string(policy)) {
			return &oaserrors.ConfigError{
				Option:  "conflict-strategy",
				Value:   string(policy),
				Message: fmt.Sprintf("must be one of %v", document.ValidPolicies()),
			}
		}
		cfg.policy = policy
		return nil
	}
}

// WithConcurrency loads up to n input files at once. Files are still combined
// one at a time in list order, so the result does not depend on n.
// Defaults to 1.
func WithConcurrency(n int) Option {
	return func(cfg *mergeConfig) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}

// Statistics counts what a merge did.
type Statistics struct {
	FilesProcessed   int `json:"files_processed"`
	PathsMerged      int `json:"paths_merged"`
	OperationsMerged int `json:"operations_merged"`
	// ComponentConflicts holds only the component types with conflicts.
	ComponentConflicts document.ConflictCounts `json:"component_conflicts"`
	PathConflicts      int                     `json:"path_conflicts"`
}

// Result is the outcome of a merge.
type Result struct {
	Document *document.Document
	Stats    Statistics
	// Files lists the inputs in the order they were merged, including any
	// that failed to load.
	Files    []string
	Warnings MergeWarnings
}

// Merger reassembles the documents in one directory into a single document.
type Merger struct {
	inputDir    string
	fs          billy.Filesystem
	host        bool
	log         document.Logger
	policy      document.ConflictPolicy
	concurrency int
}

// New returns a Merger over inputDir, which must exist.
func New(inputDir string, opts ...Option) (*Merger, error) {
	cfg := mergeConfig{
		log:         document.NopLogger{},
		policy:      document.PolicyKeepFirst,
		concurrency: 1,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("merger: invalid options: %w", err)
		}
	}

	host := cfg.fs == nil
	if host {
		abs, err := document.HostPath(inputDir)
		if err != nil {
			return nil, fmt.Errorf("merger: %w", err)
		}
		inputDir = abs
		cfg.fs = document.HostFS()
	}

	info, err := cfg.fs.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, &oaserrors.NotFoundError{Path: inputDir}
	}

	return &Merger{
		inputDir:    inputDir,
		fs:          cfg.fs,
		host:        host,
		log:         cfg.log,
		policy:      cfg.policy,
		concurrency: cfg.concurrency,
	}, nil
}

// SpecFiles returns the files a merge would process, in order.
//
// When the input directory holds a readable manifest, its entries are used in
// manifest order, skipping entries whose file is missing. Otherwise every
// spec_*.json, spec_*.yaml, and spec_*.yml file is used, sorted by name.
// An empty result is an *oaserrors.NoFilesError.
func (m *Merger) SpecFiles() ([]string, error) {
	files, _, err := m.specFiles()
	return files, err
}

func (m *Merger) specFiles() ([]string, MergeWarnings, error) {
	var warnings MergeWarnings

	mf, err := manifest.Read(m.fs, m.inputDir)
	switch {
	case err == nil:
		var files []string
		for _, entry := range mf.Files {
			path := filepath.Join(m.inputDir, entry.Name)
			if _, statErr := m.fs.Stat(path); statErr != nil {
				m.log.Warn("file from mapping not found", "file", path)
				warnings = append(warnings, NewMissingFileWarning(path))
				continue
			}
			files = append(files, path)
		}
		if len(files) == 0 {
			return nil, warnings, &oaserrors.NoFilesError{Dir: m.inputDir}
		}
		return files, warnings, nil
	case !errors.Is(err, oaserrors.ErrNotFound):
		manifestPath := filepath.Join(m.inputDir, manifest.FileName)
		m.log.Warn("failed to load mapping file", "file", manifestPath, "error", err)
		warnings = append(warnings, NewManifestUnreadableWarning(manifestPath, err))
	}

	var files []string
	for _, pattern := range specPatterns {
		matches, globErr := util.Glob(m.fs, filepath.Join(m.inputDir, pattern))
		if globErr != nil {
			return nil, warnings, fmt.Errorf("merger: glob %s: %w", pattern, globErr)
		}
		for _, match := range matches {
			if info, statErr := m.fs.Stat(match); statErr == nil && !info.IsDir() {
				files = append(files, match)
			}
		}
	}
	if len(files) == 0 {
		return nil, warnings, &oaserrors.NoFilesError{Dir: m.inputDir}
	}
	sort.Strings(files)
	return files, warnings, nil
}

// loaded is the outcome of loading one input file.
type loaded struct {
	doc *document.Document
	err error
}

// Merge combines every input file into one document.
//
// Files are processed strictly in SpecFiles order. A file that fails to load
// is skipped with a warning. Under document.PolicyError the first component
// conflict aborts the merge with an *oaserrors.ConflictError.
func (m *Merger) Merge(ctx context.Context) (*Result, error) {
	m.log.Info("starting merge", "input_dir", m.inputDir)

	files, warnings, err := m.specFiles()
	if err != nil {
		return nil, err
	}
	m.log.Info("found files to merge", "count", len(files))

	st := newState(m.policy, m.log)
	st.warnings = warnings

	next, err := m.loader(ctx, files)
	if err != nil {
		return nil, err
	}
	for i, file := range files {
		m.log.Info("processing", "file", filepath.Base(file))
		res, err := next(i)
		if err != nil {
			return nil, err
		}
		if res.err != nil {
			m.log.Error("failed to load file", "file", file, "error", res.err)
			st.warn(NewLoadFailedWarning(file, res.err))
			continue
		}
		if err := st.mergeDocument(res.doc, file); err != nil {
			return nil, fmt.Errorf("merger: %s: %w", file, err)
		}
	}

	st.clean()
	m.logStats(st.stats)

	return &Result{
		Document: document.New(st.root),
		Stats:    st.stats,
		Files:    files,
		Warnings: st.warnings,
	}, nil
}

// loader returns a function yielding the load outcome of files[i]. With a
// concurrency of 1 each file is loaded on demand; otherwise all files are
// loaded up front by a bounded group of goroutines.
func (m *Merger) loader(ctx context.Context, files []string) (func(int) (loaded, error), error) {
	if m.concurrency <= 1 {
		return func(i int) (loaded, error) {
			if err := ctx.Err(); err != nil {
				return loaded{}, err
			}
			doc, err := document.Load(m.fs, files[i], m.log)
			return loaded{doc: doc, err: err}, nil
		}, nil
	}

	results := make([]loaded, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := document.Load(m.fs, file, m.log)
			results[i] = loaded{doc: doc, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return func(i int) (loaded, error) { return results[i], nil }, nil
}

func (m *Merger) logStats(stats Statistics) {
	m.log.Info("merge completed",
		"files_processed", stats.FilesProcessed,
		"paths_merged", stats.PathsMerged,
		"operations_merged", stats.OperationsMerged,
	)
	if stats.PathConflicts > 0 {
		m.log.Warn("path conflicts", "count", stats.PathConflicts)
	}
	for _, typ := range slices.Sorted(maps.Keys(stats.ComponentConflicts)) {
		m.log.Warn("component conflicts", "type", typ, "count", stats.ComponentConflicts[typ])
	}
}
