package cssprefix

import "fmt"

// ErrorType represents the type of CSS preprocessing error.
type ErrorType int

const (
	// InvalidMode indicates an empty preprocessing mode.
	InvalidMode ErrorType = iota
	// MinifyFailed indicates the minifier rejected the stripped stylesheet.
	MinifyFailed
)

// Error represents a CSS preprocessing error.
type Error struct {
	// Type is the error type.
	Type ErrorType
	// Message is the error message.
	Message string
	// File is the source stylesheet, if known.
	File string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}
