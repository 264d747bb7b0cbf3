package repository

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/manorfm/oauthstore/internal/domain"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"github.com/manorfm/oauthstore/internal/infrastructure/config"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"go.uber.org/zap"
)

const (
	insertAccessToken = `
		INSERT INTO oauth_access_token (token_string, client_id, user_id, expiry_time, scopes)
		VALUES ($1, $2, $3, $4, $5)
	`
	selectAccessToken = `
		SELECT token_string, client_id, user_id, expiry_time, scopes
		FROM oauth_access_token WHERE token_string = $1
	`
	insertRefreshToken = `
		INSERT INTO oauth_refresh_token (refresh_token_string, client_id, user_id, scopes)
		VALUES ($1, $2, $3, $4)
	`
	selectRefreshToken = `
		SELECT refresh_token_string, client_id, user_id, scopes
		FROM oauth_refresh_token WHERE refresh_token_string = $1
	`
	updateRefreshTokenScopes = `
		UPDATE oauth_refresh_token SET scopes = $1 WHERE refresh_token_string = $2
	`
)

var _ domain.TokenRepository = (*TokenRepository)(nil)

// TokenRepository persists access and refresh tokens
type TokenRepository struct {
	db       *database.Postgres
	logger   *zap.Logger
	attempts int

	now   func() time.Time
	newID func() (string, error)
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *database.Postgres, cfg *config.Config, logger *zap.Logger) *TokenRepository {
	return &TokenRepository{
		db:       db,
		logger:   logger,
		attempts: cfg.IDGenerationAttempts,
		now:      storageNow,
		newID:    randomIdentifier,
	}
}

func (r *TokenRepository) FindAccessToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	var rec accessTokenRecord
	err := r.db.QueryRow(ctx, selectAccessToken, token).Scan(rec.fields()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find access token", zap.String("token", redact(token)), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to find access token", err)
	}
	return rec.toDomain(), nil
}

func (r *TokenRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var rec refreshTokenRecord
	err := r.db.QueryRow(ctx, selectRefreshToken, token).Scan(rec.fields()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find refresh token", zap.String("token", redact(token)), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to find refresh token", err)
	}
	return rec.toDomain(), nil
}

// GenerateAccessToken stores a new access token expiring ttl from now and
// returns the stored record.
func (r *TokenRepository) GenerateAccessToken(ctx context.Context, clientID string, userID *string, scopes []string, ttl time.Duration) (*domain.AccessToken, error) {
	var access *domain.AccessToken
	err := retryOnCollision(r.attempts, r.logger, func() error {
		token, err := r.newAccessToken(clientID, userID, scopes, ttl)
		if err != nil {
			return err
		}
		if _, err := r.db.ExecRaw(ctx, insertAccessToken, accessTokenArgs(token)...); err != nil {
			return err
		}
		access = token
		return nil
	})
	if err != nil {
		r.logger.Error("failed to generate access token", zap.String("client_id", clientID), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to generate access token", err)
	}
	return access, nil
}

// GenerateAccessRefreshTokens stores an access token and its refresh token in
// one transaction so neither is left behind without the other.
func (r *TokenRepository) GenerateAccessRefreshTokens(ctx context.Context, clientID string, userID *string, scopes []string, accessTTL time.Duration) (*domain.AccessToken, *domain.RefreshToken, error) {
	var (
		access  *domain.AccessToken
		refresh *domain.RefreshToken
	)
	err := retryOnCollision(r.attempts, r.logger, func() error {
		accessToken, err := r.newAccessToken(clientID, userID, scopes, accessTTL)
		if err != nil {
			return err
		}
		refreshID, err := r.newID()
		if err != nil {
			return err
		}
		refreshToken := &domain.RefreshToken{
			TokenString: refreshID,
			ClientID:    clientID,
			UserID:      userID,
			Scopes:      slices.Clone(scopes),
		}

		err = r.db.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, insertAccessToken, accessTokenArgs(accessToken)...); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, insertRefreshToken,
				refreshToken.TokenString, refreshToken.ClientID, refreshToken.UserID, refreshToken.Scopes)
			return err
		})
		if err != nil {
			return err
		}
		access, refresh = accessToken, refreshToken
		return nil
	})
	if err != nil {
		r.logger.Error("failed to generate access and refresh tokens", zap.String("client_id", clientID), zap.Error(err))
		return nil, nil, apperrors.NewStorageError("failed to generate access and refresh tokens", err)
	}
	return access, refresh, nil
}

// UpdateRefreshTokenScopes overwrites the scopes in a single statement. A token
// that no longer exists yields a precondition error.
func (r *TokenRepository) UpdateRefreshTokenScopes(ctx context.Context, token *domain.RefreshToken, scopes []string) error {
	tag, err := r.db.ExecRaw(ctx, updateRefreshTokenScopes, scopes, token.TokenString)
	if err != nil {
		r.logger.Error("failed to update refresh token scopes", zap.String("token", redact(token.TokenString)), zap.Error(err))
		return apperrors.NewStorageError("failed to update refresh token scopes", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("refresh token to update no longer exists", zap.String("token", redact(token.TokenString)))
		return apperrors.NewPreconditionError("failed to update refresh token scopes", domain.ErrRefreshTokenNotFound)
	}
	token.Scopes = slices.Clone(scopes)
	return nil
}

func (r *TokenRepository) newAccessToken(clientID string, userID *string, scopes []string, ttl time.Duration) (*domain.AccessToken, error) {
	id, err := r.newID()
	if err != nil {
		return nil, err
	}
	return &domain.AccessToken{
		TokenString: id,
		ClientID:    clientID,
		UserID:      userID,
		ExpiryTime:  r.now().Add(ttl),
		Scopes:      slices.Clone(scopes),
	}, nil
}

func accessTokenArgs(token *domain.AccessToken) []any {
	return []any{token.TokenString, token.ClientID, token.UserID, token.ExpiryTime, token.Scopes}
}
