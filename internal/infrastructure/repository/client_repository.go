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

const selectClient = `
	SELECT client_id, redirect_uris, client_secret, scopes, confidential_client, first_party, allowed_grant_type
	FROM oauth_clients WHERE client_id = $1
`

var _ domain.ClientRepository = (*ClientRepository)(nil)

// ClientRepository looks up registered OAuth2 clients
type ClientRepository struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *database.Postgres, logger *zap.Logger) *ClientRepository {
	return &ClientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ClientRepository) FindByID(ctx context.Context, clientID string) (*domain.Client, error) {
	var rec clientRecord
	err := r.db.QueryRow(ctx, selectClient, clientID).Scan(rec.fields()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find client", zap.String("client_id", clientID), zap.Error(err))
		return nil, apperrors.NewStorageError("failed to find client", err)
	}
	return rec.toDomain(), nil
}
