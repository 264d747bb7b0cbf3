package apperrors

import (
	"errors"
	"fmt"
)

// AppError represents an error surfaced by the store to the OAuth engine.
// Err keeps the underlying cause so errors.Is and errors.As reach driver errors.
type AppError struct {
	Message string
	Details string
	Code    string
	Err     error
}

// Error types
const (
	ValidationError   = "VALIDATION_ERROR"
	ConflictError     = "CONFLICT"
	PreconditionError = "PRECONDITION_FAILED"
	StorageError      = "STORAGE_ERROR"
	MigrationError    = "MIGRATION_ERROR"
)

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Message: message,
		Code:    ValidationError,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Message: message,
		Code:    ConflictError,
		Err:     err,
	}
}

// NewPreconditionError creates an error for an operation whose target no longer exists
func NewPreconditionError(message string, err error) *AppError {
	return &AppError{
		Message: message,
		Code:    PreconditionError,
		Err:     err,
	}
}

// NewStorageError wraps a failure of the backing store
func NewStorageError(message string, err error) *AppError {
	appErr := &AppError{
		Message: message,
		Code:    StorageError,
		Err:     err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// NewMigrationError wraps a failure while preparing or reverting the schema
func NewMigrationError(message string, err error) *AppError {
	appErr := &AppError{
		Message: message,
		Code:    MigrationError,
		Err:     err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return hasCode(err, ValidationError)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return hasCode(err, ConflictError)
}

// IsPreconditionError checks if the error is a precondition error
func IsPreconditionError(err error) bool {
	return hasCode(err, PreconditionError)
}

// IsStorageError checks if the error is a storage error
func IsStorageError(err error) bool {
	return hasCode(err, StorageError)
}

// IsMigrationError checks if the error is a migration error
func IsMigrationError(err error) bool {
	return hasCode(err, MigrationError)
}
