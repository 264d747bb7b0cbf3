package domain

import (
	"time"
)

// GrantType is the OAuth2 flow a client is allowed to use
type GrantType string

const (
	GrantTypeAuthorizationCode  GrantType = "authorization_code"
	GrantTypeImplicit           GrantType = "implicit"
	GrantTypePassword           GrantType = "password"
	GrantTypeClientCredentials  GrantType = "client_credentials"
	GrantTypeRefreshToken       GrantType = "refresh_token"
	GrantTypeTokenIntrospection GrantType = "token_introspection"
)

// ParseGrantType converts a stored or user supplied value into a GrantType
func ParseGrantType(s string) (GrantType, error) {
	g := GrantType(s)
	if !g.Valid() {
		return "", ErrInvalidGrantType
	}
	return g, nil
}

// Valid reports whether g is one of the known grant types
func (g GrantType) Valid() bool {
	switch g {
	case GrantTypeAuthorizationCode, GrantTypeImplicit, GrantTypePassword,
		GrantTypeClientCredentials, GrantTypeRefreshToken, GrantTypeTokenIntrospection:
		return true
	}
	return false
}

// Client represents a registered OAuth2 client.
//
// A nil RedirectURIs or ValidScopes means the list is not set, which is not the
// same as an empty list. Public clients leave ClientSecret and Confidential nil.
type Client struct {
	ClientID         string
	RedirectURIs     []string
	ClientSecret     *string
	ValidScopes      []string
	Confidential     *bool
	FirstParty       bool
	AllowedGrantType GrantType
}

// AuthorizationCode represents a single-use OAuth2 authorization code
type AuthorizationCode struct {
	CodeID      string
	ClientID    string
	RedirectURI string
	UserID      string
	ExpiryDate  time.Time
	Scopes      []string
}

// IsExpired checks if the code is past its expiry at the given instant
func (c *AuthorizationCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}

// AccessToken represents an opaque bearer token. UserID is nil for tokens
// issued through the client credentials grant.
type AccessToken struct {
	TokenString string
	ClientID    string
	UserID      *string
	ExpiryTime  time.Time
	Scopes      []string
}

// IsExpired checks if the token is past its expiry at the given instant
func (t *AccessToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiryTime)
}

// RefreshToken represents an opaque refresh token. It has no expiry of its own;
// Scopes may be narrowed in place when the token is used.
type RefreshToken struct {
	TokenString string
	ClientID    string
	UserID      *string
	Scopes      []string
}

// ResourceServer holds the credentials a downstream resource server uses to
// authenticate token introspection requests.
type ResourceServer struct {
	Username string
	Password string
}
