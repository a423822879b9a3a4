package config

import "fmt"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates the manifest or defines file was not found.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates the file has invalid syntax or structure.
	ConfigInvalid
	// ConfigValidationFailed indicates a manifest entry is incomplete.
	ConfigValidationFailed
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// Message is the error message.
	Message string
	// File is the configuration file path.
	File string
	// Field is the manifest field that caused the error, e.g. "preprocess[2].source".
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	where := e.File
	if e.Field != "" {
		where = fmt.Sprintf("%s [field: %s]", e.File, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error in %s: %s", where, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigErrorWithField creates a new ConfigError with a field name.
func NewConfigErrorWithField(typ ConfigErrorType, file, field, message string) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Field:   field,
		Message: message,
	}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}
