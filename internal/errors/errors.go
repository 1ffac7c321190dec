package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Sift error code.
type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"       // 400
	ErrInvalidParameters  ErrorCode = "INVALID_PARAMETERS"  // 400
	ErrUnparseableQuery   ErrorCode = "UNPARSEABLE_QUERY"   // 400
	ErrNotFound           ErrorCode = "NOT_FOUND"           // 404
	ErrDuplicateEntry     ErrorCode = "DUPLICATE_ENTRY"     // 409
	ErrValueTooLarge      ErrorCode = "VALUE_TOO_LARGE"     // 413
	ErrConflictingFilters ErrorCode = "CONFLICTING_FILTERS" // 422
	ErrRateLimited        ErrorCode = "RATE_LIMITED"        // 429
	ErrInternal           ErrorCode = "INTERNAL"            // 500
)

// SiftError represents a structured error with code, status, and details.
type SiftError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SiftError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for a missing or blank value.
func NewInvalidInput(msg string) *SiftError {
	return &SiftError{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidParameters creates a 400 error for a filter parameter that does not parse.
func NewInvalidParameters(param, msg string) *SiftError {
	return &SiftError{
		Code:    ErrInvalidParameters,
		Status:  400,
		Message: fmt.Sprintf("%s %s", param, msg),
		Details: map[string]any{"parameter": param},
	}
}

// NewUnparseableQuery creates a 400 error for a natural language query
// that no heuristic understood, or that two heuristics read differently.
func NewUnparseableQuery(query, reason string) *SiftError {
	return &SiftError{
		Code:    ErrUnparseableQuery,
		Status:  400,
		Message: fmt.Sprintf("unable to parse natural language query: %s", reason),
		Details: map[string]any{"query": query},
	}
}

// NewNotFound creates a 404 error for when a string cannot be found.
func NewNotFound(identifier string) *SiftError {
	return &SiftError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "string not found",
		Details: map[string]any{"id": identifier},
	}
}

// NewDuplicateEntry creates a 409 error when the value is already stored.
func NewDuplicateEntry(id string) *SiftError {
	return &SiftError{
		Code:    ErrDuplicateEntry,
		Status:  409,
		Message: "string already exists",
		Details: map[string]any{"id": id},
	}
}

// NewValueTooLarge creates a 413 error when a value exceeds the size limit.
func NewValueTooLarge(max, actual int) *SiftError {
	return &SiftError{
		Code:    ErrValueTooLarge,
		Status:  413,
		Message: fmt.Sprintf("value exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewBodyTooLarge creates a 413 error when a request body is cut off before
// the value could be read.
func NewBodyTooLarge(limitBytes int64) *SiftError {
	return &SiftError{
		Code:    ErrValueTooLarge,
		Status:  413,
		Message: fmt.Sprintf("request body exceeds %d bytes", limitBytes),
		Details: map[string]any{"max_bytes": limitBytes},
	}
}

// NewConflictingFilters creates a 422 error for a filter set whose
// bounds cannot both hold.
func NewConflictingFilters(minLength, maxLength int) *SiftError {
	return &SiftError{
		Code:    ErrConflictingFilters,
		Status:  422,
		Message: fmt.Sprintf("min_length (%d) cannot be greater than max_length (%d)", minLength, maxLength),
		Details: map[string]any{"min_length": minLength, "max_length": maxLength},
	}
}

// NewRateLimited creates a 429 error for a client over its request budget.
func NewRateLimited() *SiftError {
	return &SiftError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "rate limit exceeded",
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The cause is kept in Details for logging; Message stays generic.
func NewInternal(err error) *SiftError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &SiftError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is (or wraps) a SiftError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SiftError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}

// As extracts the SiftError from err, wrapping anything else as internal.
func As(err error) *SiftError {
	var sErr *SiftError
	if stderrors.As(err, &sErr) {
		return sErr
	}
	return NewInternal(err)
}
