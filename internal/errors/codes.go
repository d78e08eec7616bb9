// Package errors provides structured error handling for QuranKit.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Storage errors (database files)
//   - 3XX: Catalog errors (installed translations)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryStorage indicates database file errors.
	CategoryStorage Category = "STORAGE"
	// CategoryCatalog indicates translation catalog errors.
	CategoryCatalog Category = "CATALOG"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Storage errors (200-299)
	ErrCodeDatabaseNotFound = "ERR_201_DATABASE_NOT_FOUND"
	ErrCodeDatabaseCorrupt  = "ERR_202_DATABASE_CORRUPT"
	ErrCodeDatabaseLocked   = "ERR_203_DATABASE_LOCKED"
	ErrCodeRecentsLocked    = "ERR_204_RECENTS_LOCKED"

	// Catalog errors (300-399)
	ErrCodeTranslationUnreadable = "ERR_301_TRANSLATION_UNREADABLE"
	ErrCodeTranslationVersion    = "ERR_302_TRANSLATION_VERSION"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeQueryTooLong = "ERR_402_QUERY_TOO_LONG"
	ErrCodeUnknownVerse = "ERR_403_UNKNOWN_VERSE"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeSearchFailed = "ERR_502_SEARCH_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_NOT_FOUND")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryStorage
	case '3':
		return CategoryCatalog
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeDatabaseCorrupt:
		return SeverityFatal
	}

	if isRetryableCode(code) {
		return SeverityWarning
	}

	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
// Lock contention clears once the competing process releases its lock.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeDatabaseLocked, ErrCodeRecentsLocked:
		return true
	default:
		return false
	}
}
