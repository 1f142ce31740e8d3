package analyzer

import (
	"fmt"
	"slices"

	"github.com/go-git/go-billy/v5"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/oaserrors"
	"github.com/erraggy/oasplit/validator"
)

// Section names accepted by Section, in report order.
const (
	SectionBasicInfo  = "basic_info"
	SectionPaths      = "paths"
	SectionComponents = "components"
	SectionTags       = "tags"
	SectionSecurity   = "security"
	SectionComplexity = "complexity"
	SectionValidation = "validation"
)

// SectionNames returns every section name in report order.
func SectionNames() []string {
	return []string{
		SectionBasicInfo, SectionPaths, SectionComponents, SectionTags,
		SectionSecurity, SectionComplexity, SectionValidation,
	}
}

// Option is a function that configures an Analyzer
type Option func(*analyzeConfig) error

type analyzeConfig struct {
	fs  billy.Filesystem
	log document.Logger
}

// WithFilesystem reads the document through fs. Defaults to the host filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(cfg *analyzeConfig) error {
		if fs == nil {
			return &oaserrors.ConfigError{Option: "filesystem", Message: "must not be nil"}
		}
		cfg.fs = fs
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log document.Logger) Option {
	return func(cfg *analyzeConfig) error {
		cfg.log = document.OrNop(log)
		return nil
	}
}

// Analyzer computes read-only reports over one document.
// Every method is deterministic for a given document.
type Analyzer struct {
	doc  *document.Document
	path string
	log  document.Logger
}

// New loads the document at specPath. Load failures match oaserrors.ErrLoad.
func New(specPath string, opts ...Option) (*Analyzer, error) {
	cfg := analyzeConfig{log: document.NopLogger{}}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("analyzer: invalid options: %w", err)
		}
	}

	var doc *document.Document
	var err error
	if cfg.fs == nil {
		doc, err = document.LoadFile(specPath, cfg.log)
	} else {
		doc, err = document.Load(cfg.fs, specPath, cfg.log)
	}
	if err != nil {
		cfg.log.Error("failed to load spec", "path", specPath, "error", err)
		return nil, err
	}
	return &Analyzer{doc: doc, path: specPath, log: cfg.log}, nil
}

// FromDocument analyzes an already loaded document. path is reported as the
// file path and doc.Source.Size as the file size.
func FromDocument(doc *document.Document, path string) *Analyzer {
	return &Analyzer{doc: doc, path: path, log: document.NopLogger{}}
}

// Analysis is the full report.
type Analysis struct {
	BasicInfo       BasicInfo        `json:"basic_info"`
	Paths           PathsReport      `json:"paths"`
	Components      ComponentsReport `json:"components"`
	Tags            TagsReport       `json:"tags"`
	Security        SecurityReport   `json:"security"`
	Complexity      ComplexityReport `json:"complexity"`
	Validation      validator.Result `json:"validation"`
	Recommendations []string         `json:"recommendations"`
}

// Full computes every section plus recommendations.
func (a *Analyzer) Full() *Analysis {
	a.log.Info("generating full specification analysis", "path", a.path)
	analysis := &Analysis{
		BasicInfo:  a.BasicInfo(),
		Paths:      a.Paths(),
		Components: a.Components(),
		Tags:       a.Tags(),
		Security:   a.Security(),
		Complexity: a.Complexity(),
		Validation: a.Validation(),
	}
	analysis.Recommendations = Recommendations(analysis)
	return analysis
}

// Section computes the section called name. An unknown name is an
// *oaserrors.ConfigError listing the available sections.
func (a *Analyzer) Section(name string) (any, error) {
	switch name {
	case SectionBasicInfo:
		return a.BasicInfo(), nil
	case SectionPaths:
		return a.Paths(), nil
	case SectionComponents:
		return a.Components(), nil
	case SectionTags:
		return a.Tags(), nil
	case SectionSecurity:
		return a.Security(), nil
	case SectionComplexity:
		return a.Complexity(), nil
	case SectionValidation:
		return a.Validation(), nil
	}
	return nil, &oaserrors.ConfigError{
		Option:  "section",
		Value:   name,
		Message: fmt.Sprintf("available sections: %v", SectionNames()),
	}
}

// IsValidSection reports whether name is a section Section accepts.
func IsValidSection(name string) bool {
	return slices.Contains(SectionNames(), name)
}

// Validation runs the shallow structural checks.
func (a *Analyzer) Validation() validator.Result {
	return validator.Check(a.doc)
}
