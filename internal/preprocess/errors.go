package preprocess

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of preprocessing error.
type ErrorType int

const (
	// EmptyExpression indicates an #if or #elif without a condition.
	EmptyExpression ErrorType = iota
	// Evaluation indicates a condition that could not be evaluated.
	Evaluation
	// UnmatchedElif indicates an #elif without an open #if.
	UnmatchedElif
	// UnmatchedElse indicates an #else without an open #if.
	UnmatchedElse
	// UnmatchedEndif indicates an #endif without an open #if.
	UnmatchedEndif
	// ElifAfterElse indicates an #elif following #else in the same chain.
	ElifAfterElse
	// IncludeNotFound indicates an #include target that doesn't exist.
	IncludeNotFound
	// UnbalancedDirective indicates end of input with open conditionals.
	UnbalancedDirective
	// ErrorDirective indicates an active #error directive.
	ErrorDirective
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case EmptyExpression:
		return "empty expression"
	case Evaluation:
		return "evaluation"
	case UnmatchedElif:
		return "unmatched elif"
	case UnmatchedElse:
		return "unmatched else"
	case UnmatchedEndif:
		return "unmatched endif"
	case ElifAfterElse:
		return "elif after else"
	case IncludeNotFound:
		return "include not found"
	case UnbalancedDirective:
		return "unbalanced directive"
	case ErrorDirective:
		return "error directive"
	default:
		return "unknown"
	}
}

// Error represents a preprocessing error with its source location.
type Error struct {
	// Type is the error type.
	Type ErrorType
	// Message is the error message.
	Message string
	// File is the resolved path of the file being processed.
	File string
	// Line is the 1-based line number (0 if the error concerns the whole file).
	Line int
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(typ ErrorType, message string, loc Location) *Error {
	return &Error{
		Type:    typ,
		Message: message,
		File:    loc.File,
		Line:    loc.Line,
	}
}

// IsErrorType reports whether err is, or wraps, a preprocessing error of type typ.
func IsErrorType(err error, typ ErrorType) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Type == typ
	}
	return false
}

// Location identifies a line of an input file for diagnostics.
type Location struct {
	// File is the real path of the file.
	File string
	// Line is the 1-based line number.
	Line int
}

// String returns the location as "file:line".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}
