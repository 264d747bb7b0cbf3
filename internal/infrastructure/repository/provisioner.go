package repository

import (
	"context"
	"strings"

	"github.com/manorfm/oauthstore/internal/domain"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"go.uber.org/zap"
)

const (
	insertClient = `
		INSERT INTO oauth_clients (client_id, redirect_uris, client_secret, scopes, confidential_client, first_party, allowed_grant_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	insertUser = `
		INSERT INTO oauth_user (username, email_address, password)
		VALUES ($1, $2, $3)
	`
	insertResourceServer = `
		INSERT INTO oauth_resource_server (username, password)
		VALUES ($1, $2)
	`
)

// Provisioner registers clients, users and resource servers out of band.
// Passwords are stored as given; callers hash them first.
type Provisioner struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(db *database.Postgres, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		db:     db,
		logger: logger,
	}
}

func (p *Provisioner) CreateClient(ctx context.Context, client *domain.Client) error {
	if strings.TrimSpace(client.ClientID) == "" {
		return apperrors.NewValidationError("client id is required")
	}
	if !client.AllowedGrantType.Valid() {
		return apperrors.NewValidationError("invalid grant type: " + string(client.AllowedGrantType))
	}

	rec := newClientRecord(client)
	err := p.db.Exec(ctx, insertClient,
		rec.ClientID, rec.RedirectURIs, rec.ClientSecret, rec.Scopes, rec.ConfidentialClient, rec.FirstParty, rec.AllowedGrantType)
	if err != nil {
		return p.insertError("client", rec.ClientID, err)
	}

	p.logger.Info("client created", zap.String("client_id", rec.ClientID), zap.String("grant_type", rec.AllowedGrantType))
	return nil
}

func (p *Provisioner) CreateUser(ctx context.Context, user *domain.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return apperrors.NewValidationError("username is required")
	}
	if user.Password == "" {
		return apperrors.NewValidationError("password is required")
	}

	rec := newUserRecord(user)
	if err := p.db.Exec(ctx, insertUser, rec.Username, rec.EmailAddress, rec.Password); err != nil {
		return p.insertError("user", rec.Username, err)
	}

	p.logger.Info("user created", zap.String("username", rec.Username))
	return nil
}

func (p *Provisioner) CreateResourceServer(ctx context.Context, server *domain.ResourceServer) error {
	if strings.TrimSpace(server.Username) == "" {
		return apperrors.NewValidationError("username is required")
	}
	if server.Password == "" {
		return apperrors.NewValidationError("password is required")
	}

	rec := newResourceServerRecord(server)
	if err := p.db.Exec(ctx, insertResourceServer, rec.Username, rec.Password); err != nil {
		return p.insertError("resource server", rec.Username, err)
	}

	p.logger.Info("resource server created", zap.String("username", rec.Username))
	return nil
}

func (p *Provisioner) insertError(kind, key string, err error) error {
	if isUniqueViolation(err) {
		return apperrors.NewConflictError(kind+" "+key+" already exists", err)
	}
	return apperrors.NewStorageError("failed to create "+kind, err)
}
