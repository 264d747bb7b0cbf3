package domain

import (
	"context"
	"time"
)

// ClientRepository defines the interface for OAuth2 client lookups.
// Clients are provisioned out of band.
type ClientRepository interface {
	// FindByID finds a client by ID. It returns nil, nil when no client matches.
	FindByID(ctx context.Context, clientID string) (*Client, error)
}

// CodeRepository defines the interface for authorization code persistence
type CodeRepository interface {
	// Generate creates and stores a new code and returns its identifier
	Generate(ctx context.Context, userID, clientID, redirectURI string, scopes []string) (string, error)

	// FindByCode finds a code by its identifier. It returns nil, nil when absent.
	FindByCode(ctx context.Context, code string) (*AuthorizationCode, error)

	// Consume deletes the code. Consuming an absent code is not an error.
	Consume(ctx context.Context, code *AuthorizationCode) error
}

// TokenRepository defines the interface for access and refresh token persistence
type TokenRepository interface {
	// FindAccessToken finds an access token. It returns nil, nil when absent.
	FindAccessToken(ctx context.Context, token string) (*AccessToken, error)

	// FindRefreshToken finds a refresh token. It returns nil, nil when absent.
	FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error)

	// GenerateAccessToken creates and stores an access token expiring after ttl
	GenerateAccessToken(ctx context.Context, clientID string, userID *string, scopes []string, ttl time.Duration) (*AccessToken, error)

	// GenerateAccessRefreshTokens creates and stores an access token and its paired refresh token
	GenerateAccessRefreshTokens(ctx context.Context, clientID string, userID *string, scopes []string, accessTTL time.Duration) (*AccessToken, *RefreshToken, error)

	// UpdateRefreshTokenScopes overwrites the scopes of an existing refresh token
	UpdateRefreshTokenScopes(ctx context.Context, token *RefreshToken, scopes []string) error
}

// ResourceServerRepository defines the interface for resource server credential lookups
type ResourceServerRepository interface {
	// FindByUsername finds a resource server. It returns nil, nil when absent.
	FindByUsername(ctx context.Context, username string) (*ResourceServer, error)
}
