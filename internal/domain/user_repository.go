package domain

import (
	"context"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Authenticate checks the credentials and returns the user ID.
	// An unknown username and a wrong password both yield "", false, nil.
	Authenticate(ctx context.Context, username, password string) (string, bool, error)

	// FindByID finds a user by ID. It returns nil, nil when absent.
	FindByID(ctx context.Context, userID string) (*User, error)
}

// PasswordVerifier is supplied by the host application and owns the hashing scheme
type PasswordVerifier interface {
	Verify(password, hash string) bool
}

// DecoyHasher is implemented by verifiers that can provide a well-formed hash to
// verify against when the user does not exist.
type DecoyHasher interface {
	DecoyHash() string
}
