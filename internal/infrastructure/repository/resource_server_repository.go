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

const selectResourceServer = `
	SELECT username, password
	FROM oauth_resource_server WHERE username = $1
`

var _ domain.ResourceServerRepository = (*ResourceServerRepository)(nil)

// ResourceServerRepository looks up the credentials used to authenticate
// token introspection requests
type ResourceServerRepository struct {
	db     *database.Postgres
	logger *zap.Logger
}

func NewResourceServerRepository(db *database.Postgres, logger *zap.Logger) *ResourceServerRepository {
	return &ResourceServerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ResourceServerRepository) FindByUsername(ctx context.Context, username string) (*domain.ResourceServer, error) {
	var rec resourceServerRecord
	err := r.db.QueryRow(ctx, selectResourceServer, username).Scan(rec.fields()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find resource server", zap.String("username", username), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to find resource server", err)
	}
	return rec.toDomain(), nil
}
