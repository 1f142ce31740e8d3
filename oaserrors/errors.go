package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad matches every failure to load a document from disk.
	ErrLoad = errors.New("load error")

	// ErrNotFound indicates a missing file or directory.
	ErrNotFound = errors.New("not found")

	// ErrParse indicates a JSON or YAML syntax failure.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedFormat indicates an unknown file extension or format token.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidStructure indicates a document whose root is not a mapping.
	ErrInvalidStructure = errors.New("invalid structure")

	// ErrConflict indicates a component conflict under the error policy.
	ErrConflict = errors.New("component conflict")

	// ErrNoFiles indicates a merge that resolved zero input documents.
	ErrNoFiles = errors.New("no spec files")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// NotFoundError reports a path that does not exist.
type NotFoundError struct {
	// Path is the missing file or directory
	Path string
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return "file not found"
	}
	return "file not found: " + e.Path
}

// Is reports whether target matches this error type.
// NotFoundError is part of the load family.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrLoad
}

// ParseError represents a failure to parse JSON or YAML content.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse || target == ErrLoad
}

// UnsupportedFormatError reports a file extension or format token that is
// neither JSON nor YAML.
type UnsupportedFormatError struct {
	Path   string
	Format string
}

// Error returns a human-readable error message.
func (e *UnsupportedFormatError) Error() string {
	msg := "unsupported file format"
	if e.Format != "" {
		msg += " " + e.Format
	}
	if e.Path != "" {
		msg += " for " + e.Path
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat || target == ErrLoad
}

// InvalidStructureError reports a document that parsed but whose shape is
// unusable, such as a root that is not a mapping.
type InvalidStructureError struct {
	Path    string
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidStructureError) Error() string {
	msg := "invalid structure"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvalidStructureError) Is(target error) bool {
	return target == ErrInvalidStructure || target == ErrLoad
}

// ConflictError reports two differing definitions of the same component
// when the conflict policy is "error".
type ConflictError struct {
	// ComponentType is the component section, e.g. "schemas"
	ComponentType string
	// Name is the component key within the section
	Name string
}

// Error returns a human-readable error message.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("component conflict: %s/%s", e.ComponentType, e.Name)
}

// Is reports whether target matches this error type.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NoFilesError reports that a merge input directory yielded no documents.
type NoFilesError struct {
	Dir string
}

// Error returns a human-readable error message.
func (e *NoFilesError) Error() string {
	return "no spec files found in " + e.Dir
}

// Is reports whether target matches this error type.
func (e *NoFilesError) Is(target error) bool {
	return target == ErrNoFiles
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
