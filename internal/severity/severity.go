// Package severity provides the severity levels attached to structured merge
// warnings.
//
// The levels, from least to most severe in practice:
//   - SeverityInfo: notices about choices made, such as a kept component
//   - SeverityWarning: recoverable problems that changed the output
//   - SeverityError: problems that dropped an input, such as an unloadable file
package severity

// Severity indicates how serious a reported issue is.
type Severity int

const (
	// SeverityError indicates an input was dropped.
	SeverityError Severity = iota

	// SeverityWarning indicates a recoverable problem that changed the output.
	SeverityWarning

	// SeverityInfo indicates an informational notice.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
