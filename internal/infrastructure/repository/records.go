package repository

import (
	"time"

	"github.com/manorfm/oauthstore/internal/domain"
)

// Rows are scanned into these records and converted to domain values.
// Nullable columns use pointer fields and TEXT[] columns map to []string,
// where nil means NULL.

type clientRecord struct {
	ClientID           string
	RedirectURIs       []string
	ClientSecret       *string
	Scopes             []string
	ConfidentialClient *bool
	FirstParty         bool
	AllowedGrantType   string
}

func newClientRecord(c *domain.Client) clientRecord {
	return clientRecord{
		ClientID:           c.ClientID,
		RedirectURIs:       c.RedirectURIs,
		ClientSecret:       c.ClientSecret,
		Scopes:             c.ValidScopes,
		ConfidentialClient: c.Confidential,
		FirstParty:         c.FirstParty,
		AllowedGrantType:   string(c.AllowedGrantType),
	}
}

func (r *clientRecord) fields() []any {
	return []any{&r.ClientID, &r.RedirectURIs, &r.ClientSecret, &r.Scopes, &r.ConfidentialClient, &r.FirstParty, &r.AllowedGrantType}
}

func (r *clientRecord) toDomain() *domain.Client {
	return &domain.Client{
		ClientID:         r.ClientID,
		RedirectURIs:     r.RedirectURIs,
		ClientSecret:     r.ClientSecret,
		ValidScopes:      r.Scopes,
		Confidential:     r.ConfidentialClient,
		FirstParty:       r.FirstParty,
		AllowedGrantType: domain.GrantType(r.AllowedGrantType),
	}
}

type codeRecord struct {
	CodeString  string
	ClientID    string
	RedirectURI string
	UserID      string
	ExpiryDate  time.Time
	Scopes      []string
}

func (r *codeRecord) fields() []any {
	return []any{&r.CodeString, &r.ClientID, &r.RedirectURI, &r.UserID, &r.ExpiryDate, &r.Scopes}
}

func (r *codeRecord) toDomain() *domain.AuthorizationCode {
	return &domain.AuthorizationCode{
		CodeID:      r.CodeString,
		ClientID:    r.ClientID,
		RedirectURI: r.RedirectURI,
		UserID:      r.UserID,
		ExpiryDate:  r.ExpiryDate.UTC(),
		Scopes:      r.Scopes,
	}
}

type accessTokenRecord struct {
	TokenString string
	ClientID    string
	UserID      *string
	ExpiryTime  time.Time
	Scopes      []string
}

func (r *accessTokenRecord) fields() []any {
	return []any{&r.TokenString, &r.ClientID, &r.UserID, &r.ExpiryTime, &r.Scopes}
}

func (r *accessTokenRecord) toDomain() *domain.AccessToken {
	return &domain.AccessToken{
		TokenString: r.TokenString,
		ClientID:    r.ClientID,
		UserID:      r.UserID,
		ExpiryTime:  r.ExpiryTime.UTC(),
		Scopes:      r.Scopes,
	}
}

type refreshTokenRecord struct {
	RefreshTokenString string
	ClientID           string
	UserID             *string
	Scopes             []string
}

func (r *refreshTokenRecord) fields() []any {
	return []any{&r.RefreshTokenString, &r.ClientID, &r.UserID, &r.Scopes}
}

func (r *refreshTokenRecord) toDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		TokenString: r.RefreshTokenString,
		ClientID:    r.ClientID,
		UserID:      r.UserID,
		Scopes:      r.Scopes,
	}
}

type userRecord struct {
	Username     string
	EmailAddress *string
	Password     string
}

func newUserRecord(u *domain.User) userRecord {
	return userRecord{
		Username:     u.Username,
		EmailAddress: u.EmailAddress,
		Password:     u.Password,
	}
}

func (r *userRecord) fields() []any {
	return []any{&r.Username, &r.EmailAddress, &r.Password}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		Username:     r.Username,
		EmailAddress: r.EmailAddress,
		Password:     r.Password,
	}
}

type resourceServerRecord struct {
	Username string
	Password string
}

func newResourceServerRecord(s *domain.ResourceServer) resourceServerRecord {
	return resourceServerRecord{
		Username: s.Username,
		Password: s.Password,
	}
}

func (r *resourceServerRecord) fields() []any {
	return []any{&r.Username, &r.Password}
}

func (r *resourceServerRecord) toDomain() *domain.ResourceServer {
	return &domain.ResourceServer{
		Username: r.Username,
		Password: r.Password,
	}
}
