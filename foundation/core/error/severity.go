// File: severity.go
// Title: Error Severity Levels
// Description: Severity of an error, used to pick the log level when an
//              error is logged.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-03-10
//
// Change History:
// - 2025-03-10 v0.1.0: Initial severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks errors that need no attention, e.g. a stale cache entry
	SeverityLow Severity = iota
	// SeverityMedium marks rejected input
	SeverityMedium
	// SeverityHigh marks failures of the environment such as unreadable files
	SeverityHigh
	// SeverityCritical marks broken internal invariants
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode returns the default severity of a code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeIO, CodeConfigError:
		return SeverityHigh
	case CodeCacheError:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
