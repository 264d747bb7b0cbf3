package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/manorfm/oauthstore/internal/domain"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"go.uber.org/zap"
)

const selectUser = `
	SELECT username, email_address, password
	FROM oauth_user WHERE username = $1
`

var _ domain.UserRepository = (*UserRepository)(nil)

// UserRepository looks up and authenticates resource owners
type UserRepository struct {
	db       *database.Postgres
	verifier domain.PasswordVerifier
	logger   *zap.Logger
}

// NewUserRepository creates a new UserRepository. Password checks are
// delegated to verifier, which is required; a nil verifier panics.
func NewUserRepository(db *database.Postgres, verifier domain.PasswordVerifier, logger *zap.Logger) *UserRepository {
	if verifier == nil {
		panic("repository: NewUserRepository requires a PasswordVerifier")
	}
	return &UserRepository{
		db:       db,
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate returns the user ID when the credentials match. An unknown
// username and a wrong password produce the same result.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (string, bool, error) {
	user, err := r.FindByID(ctx, username)
	if err != nil {
		return "", false, err
	}

	if user == nil {
		if decoy, ok := r.verifier.(domain.DecoyHasher); ok {
			r.verifier.Verify(password, decoy.DecoyHash())
		}
		return "", false, nil
	}

	if !r.verifier.Verify(password, user.Password) {
		return "", false, nil
	}
	return user.ID(), true, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	var rec userRecord
	err := r.db.QueryRow(ctx, selectUser, userID).Scan(rec.fields()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find user", zap.String("username", userID), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to find user", err)
	}
	return rec.toDomain(), nil
}
