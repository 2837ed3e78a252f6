package lexer

import (
	"fmt"
	"grsbpl/internal/diag"
	"grsbpl/internal/span"
)

// ErrorKind classifies a lexical failure. Kinds are themselves errors so
// that callers can match with errors.Is(err, lexer.UnterminatedString).
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota + 1
	UnterminatedString
	UnterminatedChar
	UnterminatedComment
	MalformedNumber
	InvalidEscape
	MalformedChar
)

var kindNames = map[ErrorKind]string{
	InvalidCharacter:    "invalid character",
	UnterminatedString:  "unterminated string literal",
	UnterminatedChar:    "unterminated character literal",
	UnterminatedComment: "unterminated block comment",
	MalformedNumber:     "malformed number literal",
	InvalidEscape:       "invalid escape sequence",
	MalformedChar:       "malformed character literal",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Code returns the stable diagnostic code, e.g. "E1002".
func (k ErrorKind) Code() string {
	return fmt.Sprintf("E%04d", 1000+int(k))
}

// Error is a lexical failure. Pos is the location of the first character
// that could not be matched, or of the opening delimiter for unterminated
// literals and comments. LineLength is the character count of the whole
// line containing Pos.
type Error struct {
	Kind       ErrorKind
	Message    string
	Hint       string
	Pos        span.Position
	LineLength int
}

// LineNumber returns the 1-based line of the failure.
func (e *Error) LineNumber() int { return e.Pos.Line }

// LineOffset returns the 0-based character offset of the failure within its line.
func (e *Error) LineOffset() int { return e.Pos.Column }

func (e *Error) Code() string { return e.Kind.Code() }

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column+1, e.Message)
}

func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Diagnostic converts the error for rendering; file is a display name and
// may be empty.
func (e *Error) Diagnostic(file string) diag.Diagnostic {
	d := diag.Errorf(e.Code(), e.Pos.Line, e.Pos.Column, e.LineLength, "%s", e.Message)
	d.File = file
	d.Hint = e.Hint
	return d
}
