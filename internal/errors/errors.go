package errors

import (
	"fmt"
)

// QuranError is the structured error type for QuranKit.
// It provides rich context for error handling, logging, and user presentation.
type QuranError struct {
	// Code is the unique error code (e.g., "ERR_201_DATABASE_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Storage, Catalog, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *QuranError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *QuranError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with QuranError.
func (e *QuranError) Is(target error) bool {
	if t, ok := target.(*QuranError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *QuranError) WithDetail(key, value string) *QuranError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *QuranError) WithSuggestion(suggestion string) *QuranError {
	e.Suggestion = suggestion
	return e
}

// New creates a new QuranError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *QuranError {
	return &QuranError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a QuranError from an existing error.
// The error's message becomes the QuranError message.
func Wrap(code string, err error) *QuranError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *QuranError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// StorageError creates a database-file error.
func StorageError(message string, cause error) *QuranError {
	return New(ErrCodeDatabaseNotFound, message, cause)
}

// CatalogError creates a translation catalog error.
func CatalogError(message string, cause error) *QuranError {
	return New(ErrCodeTranslationUnreadable, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *QuranError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *QuranError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a QuranError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if qe, ok := err.(*QuranError); ok {
		return qe.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if qe, ok := err.(*QuranError); ok {
		return qe.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a QuranError.
// Returns empty string if not a QuranError.
func GetCode(err error) string {
	if qe, ok := err.(*QuranError); ok {
		return qe.Code
	}
	return ""
}

// GetCategory extracts the category from a QuranError.
// Returns empty string if not a QuranError.
func GetCategory(err error) Category {
	if qe, ok := err.(*QuranError); ok {
		return qe.Category
	}
	return ""
}
