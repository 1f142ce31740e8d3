package splitter

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/fileutil"
	"github.com/erraggy/oasplit/oaserrors"
)

const (
	// DefaultOutputDir is where split documents go when no directory is given.
	DefaultOutputDir = "split_specs"
	// DefaultMaxOperations is the default group size limit for path and size splits.
	DefaultMaxOperations = 30
)

// Method names a split strategy.
type Method string

const (
	// MethodTags groups operations by their tags.
	MethodTags Method = "tags"
	// MethodPath groups operations by the first path segment.
	MethodPath Method = "path"
	// MethodSize cuts the operation list into fixed-size chunks.
	MethodSize Method = "size"
)

// ValidMethods returns every supported split method.
func ValidMethods() []string {
	return []string{string(MethodTags), string(MethodPath), string(MethodSize)}
}

// IsValidMethod reports whether s names a supported split method.
func IsValidMethod(s string) bool {
	return slices.Contains(ValidMethods(), s)
}

// ParseMethod converts s to a Method.
func ParseMethod(s string) (Method, error) {
	if !IsValidMethod(s) {
		return "", &oaserrors.ConfigError{
			Option:  "method",
			Value:   s,
			Message: fmt.Sprintf("must be one of %v", ValidMethods()),
		}
	}
	return Method(s), nil
}

// Option is a function that configures a Splitter
type Option func(*splitConfig) error

type splitConfig struct {
	fs                billy.Filesystem
	outputDir         string
	log               document.Logger
	includeComponents bool
}

// WithFilesystem reads the source and writes the output through fs.
// Defaults to the host filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(cfg *splitConfig) error {
		if fs == nil {
			return &oaserrors.ConfigError{Option: "filesystem", Message: "must not be nil"}
		}
		cfg.fs = fs
		return nil
	}
}

// WithOutputDir sets the directory split documents are written to.
func WithOutputDir(dir string) Option {
	return func(cfg *splitConfig) error {
		if dir == "" {
			return &oaserrors.ConfigError{Option: "output-dir", Message: "must not be empty"}
		}
		cfg.outputDir = dir
		return nil
	}
}

// WithLogger sets the logger for warnings and progress messages.
func WithLogger(log document.Logger) Option {
	return func(cfg *splitConfig) error {
		cfg.log = document.OrNop(log)
		return nil
	}
}

// WithIncludeComponents controls whether split documents carry the source's
// components. Defaults to true.
func WithIncludeComponents(include bool) Option {
	return func(cfg *splitConfig) error {
		cfg.includeComponents = include
		return nil
	}
}

// Splitter partitions one loaded document into smaller documents.
// The source document is never modified.
type Splitter struct {
	specPath          string
	outputDir         string
	fs                billy.Filesystem
	log               document.Logger
	includeComponents bool

	doc    *document.Document
	common *document.Map
	stamp  float64
}

// New loads the document at specPath and prepares the output directory.
// Load failures match oaserrors.ErrLoad.
func New(specPath string, opts ...Option) (*Splitter, error) {
	cfg := splitConfig{
		outputDir:         DefaultOutputDir,
		log:               document.NopLogger{},
		includeComponents: true,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("splitter: invalid options: %w", err)
		}
	}

	loadPath := specPath
	if cfg.fs == nil {
		var err error
		if loadPath, err = document.HostPath(specPath); err != nil {
			return nil, fmt.Errorf("splitter: %w", err)
		}
		if cfg.outputDir, err = document.HostPath(cfg.outputDir); err != nil {
			return nil, fmt.Errorf("splitter: %w", err)
		}
		cfg.fs = document.HostFS()
	}

	if err := cfg.fs.MkdirAll(cfg.outputDir, fileutil.DirPerm); err != nil {
		return nil, fmt.Errorf("splitter: create output directory %s: %w", cfg.outputDir, err)
	}

	doc, err := document.Load(cfg.fs, loadPath, cfg.log)
	if err != nil {
		cfg.log.Error("failed to load spec", "path", specPath, "error", err)
		return nil, err
	}

	modTime := doc.Source.ModTime
	if modTime.IsZero() {
		modTime = time.Now()
	}

	return &Splitter{
		specPath:          specPath,
		outputDir:         cfg.outputDir,
		fs:                cfg.fs,
		log:               cfg.log,
		includeComponents: cfg.includeComponents,
		doc:               doc,
		common:            document.ExtractComponents(doc),
		stamp:             float64(modTime.UnixNano()) / float64(time.Second),
	}, nil
}

// Document returns the loaded source document.
func (s *Splitter) Document() *document.Document {
	return s.doc
}

// OutputDir returns the directory split documents are written to.
func (s *Splitter) OutputDir() string {
	return s.outputDir
}

// Summary is a quick structural overview of the source document.
type Summary struct {
	TotalEndpoints     int            `json:"total_endpoints"`
	TotalOperations    int            `json:"total_operations"`
	OperationsByMethod map[string]int `json:"operations_by_method"`
	TotalSchemas       int            `json:"total_schemas"`
	TotalResponses     int            `json:"total_responses"`
	TotalParameters    int            `json:"total_parameters"`
	HasSecurity        bool           `json:"has_security"`
	HasServers         bool           `json:"has_servers"`
	OpenAPIVersion     string         `json:"openapi_version"`
}

// Summary describes the source document before it is split.
func (s *Splitter) Summary() Summary {
	counts := document.CountOperations(s.doc)
	paths, _ := s.doc.Paths()
	comps, _ := s.doc.Components()

	sectionLen := func(typ string) int {
		section, _ := s.doc.ComponentSection(typ)
		return section.Len()
	}

	return Summary{
		TotalEndpoints:     paths.Len(),
		TotalOperations:    counts.Total,
		OperationsByMethod: counts.NonZero(),
		TotalSchemas:       sectionLen("schemas"),
		TotalResponses:     sectionLen("responses"),
		TotalParameters:    sectionLen("parameters"),
		HasSecurity:        s.doc.Root().Has("security") || comps.Has("securitySchemes"),
		HasServers:         s.doc.Root().Has("servers"),
		OpenAPIVersion:     s.doc.VersionString("unknown"),
	}
}
