// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERROR CODES
// ============================================================================

const (
	// Classification errors
	ErrCodePatternRegistryInvalid = "PATTERN_REGISTRY_INVALID"
	ErrCodeUnsupportedLocale      = "UNSUPPORTED_LOCALE"

	// Data layer errors
	ErrCodeDataFetchFailed  = "DATA_FETCH_FAILED"
	ErrCodeCacheUnavailable = "CACHE_UNAVAILABLE"
	ErrCodeSearchFailed     = "SEARCH_QUERY_FAILED"

	// Notification errors
	ErrCodeNotificationFailed = "NOTIFICATION_SEND_FAILED"

	// Generic errors
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ============================================================================
// STANDARD ERROR TYPE
// ============================================================================

// StandardError carries a stable machine-readable code alongside the
// human-readable message, plus a retryability hint for callers that
// talk to external systems.
type StandardError struct {
	Code      string
	Message   string
	Retryable bool
	Cause     error
}

func (e *StandardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

func NewPatternRegistryError(msg string, cause error) *StandardError {
	return &StandardError{Code: ErrCodePatternRegistryInvalid, Message: msg, Cause: cause}
}

func NewUnsupportedLocaleError(locale string) *StandardError {
	return &StandardError{Code: ErrCodeUnsupportedLocale, Message: fmt.Sprintf("locale %q is not configured", locale)}
}

func NewDataFetchError(msg string, cause error) *StandardError {
	return &StandardError{Code: ErrCodeDataFetchFailed, Message: msg, Retryable: true, Cause: cause}
}

func NewCacheError(msg string, cause error) *StandardError {
	return &StandardError{Code: ErrCodeCacheUnavailable, Message: msg, Retryable: true, Cause: cause}
}

func NewSearchError(msg string, cause error) *StandardError {
	return &StandardError{Code: ErrCodeSearchFailed, Message: msg, Retryable: true, Cause: cause}
}

func NewNotificationError(msg string, cause error) *StandardError {
	return &StandardError{Code: ErrCodeNotificationFailed, Message: msg, Retryable: true, Cause: cause}
}

func NewInvalidInputError(msg string) *StandardError {
	return &StandardError{Code: ErrCodeInvalidInput, Message: msg}
}

func NewInternalError(msg string, cause error) *StandardError {
	return &StandardError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// ============================================================================
// HELPERS
// ============================================================================

// IsRetryable reports whether the error (or any error it wraps)
// carries a retryable StandardError.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// CodeOf extracts the error code, or ErrCodeInternal when the error is
// not a StandardError.
func CodeOf(err error) string {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
