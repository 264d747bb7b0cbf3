package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/manorfm/oauthstore/internal/domain"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"github.com/manorfm/oauthstore/internal/infrastructure/config"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"go.uber.org/zap"
)

const (
	insertCode = `
		INSERT INTO oauth_code (code_string, client_id, redirect_uri, user_id, expiry_date, scopes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	selectCode = `
		SELECT code_string, client_id, redirect_uri, user_id, expiry_date, scopes
		FROM oauth_code WHERE code_string = $1
	`
	deleteCode = `DELETE FROM oauth_code WHERE code_string = $1`
)

var _ domain.CodeRepository = (*CodeRepository)(nil)

// CodeRepository persists single-use authorization codes
type CodeRepository struct {
	db       *database.Postgres
	logger   *zap.Logger
	lifetime time.Duration
	attempts int

	now   func() time.Time
	newID func() (string, error)
}

// NewCodeRepository creates a new CodeRepository. Codes expire cfg.CodeLifetime after generation.
func NewCodeRepository(db *database.Postgres, cfg *config.Config, logger *zap.Logger) *CodeRepository {
	return &CodeRepository{
		db:       db,
		logger:   logger,
		lifetime: cfg.CodeLifetime,
		attempts: cfg.IDGenerationAttempts,
		now:      storageNow,
		newID:    randomIdentifier,
	}
}

func (r *CodeRepository) Generate(ctx context.Context, userID, clientID, redirectURI string, scopes []string) (string, error) {
	var code string
	err := retryOnCollision(r.attempts, r.logger, func() error {
		id, err := r.newID()
		if err != nil {
			return err
		}
		expiry := r.now().Add(r.lifetime)
		if _, err := r.db.ExecRaw(ctx, insertCode, id, clientID, redirectURI, userID, expiry, scopes); err != nil {
			return err
		}
		code = id
		return nil
	})
	if err != nil {
		r.logger.Error("failed to generate authorization code",
			zap.String("client_id", clientID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", apperrors.NewStorageError("failed to generate authorization code", err)
	}

	r.logger.Debug("authorization code generated", zap.String("code", redact(code)), zap.String("client_id", clientID))
	return code, nil
}

func (r *CodeRepository) FindByCode(ctx context.Context, code string) (*domain.AuthorizationCode, error) {
	var rec codeRecord
	err := r.db.QueryRow(ctx, selectCode, code).Scan(rec.fields()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find authorization code", zap.String("code", redact(code)), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to find authorization code", err)
	}
	return rec.toDomain(), nil
}

// Consume deletes the code in a single statement. Deleting a code that is
// already gone is not an error.
func (r *CodeRepository) Consume(ctx context.Context, code *domain.AuthorizationCode) error {
	tag, err := r.db.ExecRaw(ctx, deleteCode, code.CodeID)
	if err != nil {
		r.logger.Error("failed to consume authorization code", zap.String("code", redact(code.CodeID)), zap.Error(err))
		return apperrors.NewStorageError("failed to consume authorization code", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("authorization code already consumed", zap.String("code", redact(code.CodeID)))
	}
	return nil
}
