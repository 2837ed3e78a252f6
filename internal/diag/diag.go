// Package diag provides diagnostic types for the toolchain.
package diag

import (
	"fmt"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic represents a located message. Line is 1-based, Column is the
// 0-based character offset within the line and LineLength is the character
// count of that line, terminator excluded.
type Diagnostic struct {
	Code       string   `json:"code"`           // stable error code, e.g. "E1001"
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`        // human-readable description
	File       string   `json:"file,omitempty"` // display name of the source
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	LineLength int      `json:"line_length"`
	Hint       string   `json:"hint,omitempty"` // optional hint
}

// String returns a human-readable representation of the diagnostic.
func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%d:%d", d.Line, d.Column+1)
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	msg := fmt.Sprintf("[%s] %s at %s: %s", d.Code, d.Severity, loc, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Errorf creates an error diagnostic at the given line and column.
func Errorf(code string, line, column, lineLength int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:       code,
		Severity:   Error,
		Message:    fmt.Sprintf(format, args...),
		Line:       line,
		Column:     column,
		LineLength: lineLength,
	}
}
