package repository

import (
	"github.com/manorfm/oauthstore/internal/domain"
	"github.com/manorfm/oauthstore/internal/infrastructure/config"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"go.uber.org/zap"
)

// Stores bundles every storage role the OAuth engine expects, built over one
// shared connection pool.
type Stores struct {
	Clients         domain.ClientRepository
	Codes           domain.CodeRepository
	Tokens          domain.TokenRepository
	Users           domain.UserRepository
	ResourceServers domain.ResourceServerRepository
	Provisioner     *Provisioner
}

// NewStores builds the adapters. verifier must not be nil.
func NewStores(db *database.Postgres, cfg *config.Config, verifier domain.PasswordVerifier, logger *zap.Logger) *Stores {
	return &Stores{
		Clients:         NewClientRepository(db, logger.Named("clients")),
		Codes:           NewCodeRepository(db, cfg, logger.Named("codes")),
		Tokens:          NewTokenRepository(db, cfg, logger.Named("tokens")),
		Users:           NewUserRepository(db, verifier, logger.Named("users")),
		ResourceServers: NewResourceServerRepository(db, logger.Named("resource_servers")),
		Provisioner:     NewProvisioner(db, logger.Named("provisioner")),
	}
}
