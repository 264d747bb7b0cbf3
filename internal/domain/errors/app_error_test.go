package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantErr  string
		wantCode string
	}{
		{
			name:     "validation_error",
			err:      NewValidationError("invalid input"),
			wantErr:  "invalid input",
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "conflict_error",
			err:      NewConflictError("client already exists", errors.New("duplicate key")),
			wantErr:  "client already exists: duplicate key",
			wantCode: "CONFLICT",
		},
		{
			name:     "precondition_error",
			err:      NewPreconditionError("refresh token update failed", errors.New("gone")),
			wantErr:  "refresh token update failed: gone",
			wantCode: "PRECONDITION_FAILED",
		},
		{
			name:     "storage_error_with_cause",
			err:      NewStorageError("failed to find client", errors.New("connection reset")),
			wantErr:  "failed to find client: connection reset",
			wantCode: "STORAGE_ERROR",
		},
		{
			name:     "migration_error_without_cause",
			err:      NewMigrationError("schema is dirty", nil),
			wantErr:  "schema is dirty",
			wantCode: "MIGRATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantErr {
				t.Errorf("AppError.Error() = %v, want %v", tt.err.Error(), tt.wantErr)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("AppError.Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestErrorTypeChecks(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{name: "is_validation_error", err: NewValidationError("test"), check: IsValidationError, want: true},
		{name: "is_conflict_error", err: NewConflictError("test", cause), check: IsConflictError, want: true},
		{name: "is_precondition_error", err: NewPreconditionError("test", cause), check: IsPreconditionError, want: true},
		{name: "is_storage_error", err: NewStorageError("test", cause), check: IsStorageError, want: true},
		{name: "is_migration_error", err: NewMigrationError("test", cause), check: IsMigrationError, want: true},
		{name: "wrapped_storage_error", err: fmt.Errorf("outer: %w", NewStorageError("test", cause)), check: IsStorageError, want: true},
		{name: "storage_is_not_precondition", err: NewStorageError("test", cause), check: IsPreconditionError, want: false},
		{name: "plain_error", err: cause, check: IsStorageError, want: false},
		{name: "nil_error", err: nil, check: IsMigrationError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("failed to find user", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}
