// Package diag defines the host-level diagnostic error used by the lexer,
// parser, and CLI. It is distinct from the interpreter's own Err value
// (internal/value.TagErr): a ScamError means the toolchain itself could not
// proceed (bad syntax, a missing file, a corrupt script argument), while a
// core Err is ordinary program data that a Scam program can inspect and
// recover from.
package diag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a ScamError by error category.
type Kind string

const (
	SyntaxError   Kind = "SyntaxError"
	InternalError Kind = "InternalError"
	IOError       Kind = "IOError"
)

// SourceLocation pinpoints where in a source file a diagnostic applies.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ScamError is a host-level diagnostic: where it happened, what kind it is,
// and optionally the offending source line for a caret-annotated report.
type ScamError struct {
	Kind     Kind
	Message  string
	Location SourceLocation
	Source   string
	cause    error
}

func (e *ScamError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	if e.Location.File != "" || e.Location.Line != 0 {
		fmt.Fprintf(&sb, " (at %s)", e.Location)
	}
	if e.Source != "" {
		pad := len(fmt.Sprintf("%d | ", e.Location.Line))
		if e.Location.Column > 1 {
			pad += e.Location.Column - 1
		}
		fmt.Fprintf(&sb, "\n  %d | %s\n  %s^", e.Location.Line, e.Source, strings.Repeat(" ", pad))
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *ScamError) Unwrap() error { return e.cause }

// NewSyntax builds a SyntaxError at the given position, wrapping the message
// with github.com/pkg/errors so a stack trace is attached for -v diagnostics.
func NewSyntax(file string, line, col int, format string, args ...any) *ScamError {
	msg := fmt.Sprintf(format, args...)
	return &ScamError{
		Kind:     SyntaxError,
		Message:  msg,
		Location: SourceLocation{File: file, Line: line, Column: col},
		cause:    errors.New(msg),
	}
}

// NewInternal wraps an unexpected host-side failure (file I/O, a corrupt
// collector state) that is not a property of the Scam program being run.
func NewInternal(cause error, format string, args ...any) *ScamError {
	msg := fmt.Sprintf(format, args...)
	return &ScamError{
		Kind:    InternalError,
		Message: msg,
		cause:   errors.Wrap(cause, msg),
	}
}

// NewIO wraps a failure opening or operating on a file port or script path.
func NewIO(path string, cause error) *ScamError {
	return &ScamError{
		Kind:    IOError,
		Message: fmt.Sprintf("%s: %v", path, cause),
		cause:   errors.Wrapf(cause, "io: %s", path),
	}
}

// WithSource attaches the offending source line for a caret-annotated report.
func (e *ScamError) WithSource(source string) *ScamError {
	e.Source = source
	return e
}
