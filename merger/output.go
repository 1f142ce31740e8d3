package merger

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/validator"
)

// OutputFormat picks the format for a merged document written to path:
// YAML for .yaml and .yml, JSON otherwise.
func OutputFormat(path string) document.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return document.FormatYAML
	default:
		return document.FormatJSON
	}
}

// WriteResult saves the merged document to outputPath. An empty format is
// chosen with OutputFormat. On the host filesystem a relative outputPath
// resolves against the working directory.
func (m *Merger) WriteResult(result *Result, outputPath string, format document.Format) error {
	if format == "" {
		format = OutputFormat(outputPath)
	}
	if m.host {
		abs, err := document.HostPath(outputPath)
		if err != nil {
			return fmt.Errorf("merger: %w", err)
		}
		outputPath = abs
	}
	m.log.Info("saving merged spec", "path", outputPath, "format", string(format))
	if err := document.Save(m.fs, result.Document, outputPath, format); err != nil {
		return fmt.Errorf("merger: %w", err)
	}
	return nil
}

// ValidateResult runs the shallow structural checks on the merged document.
// It never affects what WriteResult writes.
func ValidateResult(result *Result) []string {
	return validator.Validate(result.Document)
}
