package main

import (
	"context"
	"fmt"

	"github.com/manorfm/oauthstore/internal/domain"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"github.com/manorfm/oauthstore/internal/infrastructure/password"
	"github.com/manorfm/oauthstore/internal/infrastructure/repository"
	"github.com/oklog/ulid/v2"
)

type ClientCommand struct {
	Add ClientAddCommand `command:"add" description:"Register a client"`
}

type ClientAddCommand struct {
	ID           string   `long:"id" description:"Client ID (a ULID is generated when empty)"`
	Secret       string   `long:"secret" description:"Client secret; omit for public clients"`
	RedirectURIs []string `long:"redirect-uri" description:"Allowed redirect URI (repeatable)"`
	Scopes       []string `long:"scope" description:"Allowed scope (repeatable); omit to leave scopes unrestricted"`
	Confidential bool     `long:"confidential" description:"Mark the client confidential (implied by --secret)"`
	FirstParty   bool     `long:"first-party" description:"Mark the client first party"`
	GrantType    string   `long:"grant-type" required:"true" description:"Allowed grant type" choice:"authorization_code" choice:"implicit" choice:"password" choice:"client_credentials" choice:"refresh_token" choice:"token_introspection"`
}

func (c *ClientAddCommand) Execute(args []string) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	return run(func(ctx context.Context, a *app) error {
		return a.withProvisioner(ctx, func(p *repository.Provisioner) error {
			if err := p.CreateClient(ctx, client); err != nil {
				return err
			}
			fmt.Println(client.ClientID)
			return nil
		})
	})
}

// client builds the client to register. Flags that were not given stay absent.
func (c *ClientAddCommand) client() (*domain.Client, error) {
	grantType, err := domain.ParseGrantType(c.GrantType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	client := &domain.Client{
		ClientID:         c.ID,
		RedirectURIs:     c.RedirectURIs,
		ValidScopes:      c.Scopes,
		FirstParty:       c.FirstParty,
		AllowedGrantType: grantType,
	}
	if client.ClientID == "" {
		client.ClientID = ulid.Make().String()
	}
	if c.Secret != "" {
		secret := c.Secret
		client.ClientSecret = &secret
	}
	if c.Secret != "" || c.Confidential {
		confidential := true
		client.Confidential = &confidential
	}
	return client, nil
}

type UserCommand struct {
	Add UserAddCommand `command:"add" description:"Register a user with a bcrypt hashed password"`
}

type UserAddCommand struct {
	Username string `long:"username" required:"true" description:"Username, also used as the user ID"`
	Email    string `long:"email" description:"Email address"`
	Password string `long:"password" env:"OAUTH_USER_PASSWORD" required:"true" description:"Plain text password"`
}

func (c *UserAddCommand) Execute(args []string) error {
	user, err := c.user()
	if err != nil {
		return err
	}
	return run(func(ctx context.Context, a *app) error {
		return a.withProvisioner(ctx, func(p *repository.Provisioner) error {
			return p.CreateUser(ctx, user)
		})
	})
}

func (c *UserAddCommand) user() (*domain.User, error) {
	hash, err := password.HashPassword(c.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: c.Username,
		Password: hash,
	}
	if c.Email != "" {
		email := c.Email
		user.EmailAddress = &email
	}
	return user, nil
}

type ResourceServerCommand struct {
	Add ResourceServerAddCommand `command:"add" description:"Register resource server credentials"`
}

type ResourceServerAddCommand struct {
	Username string `long:"username" required:"true" description:"Resource server username"`
	Password string `long:"password" env:"OAUTH_RESOURCE_SERVER_PASSWORD" required:"true" description:"Resource server password"`
	Hash     bool   `long:"hash" description:"Store a bcrypt hash instead of the password as given"`
}

func (c *ResourceServerAddCommand) Execute(args []string) error {
	server, err := c.resourceServer()
	if err != nil {
		return err
	}
	return run(func(ctx context.Context, a *app) error {
		return a.withProvisioner(ctx, func(p *repository.Provisioner) error {
			return p.CreateResourceServer(ctx, server)
		})
	})
}

// resourceServer keeps the password as given unless --hash is set
func (c *ResourceServerAddCommand) resourceServer() (*domain.ResourceServer, error) {
	secret := c.Password
	if c.Hash {
		hash, err := password.HashPassword(c.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		secret = hash
	}
	return &domain.ResourceServer{Username: c.Username, Password: secret}, nil
}
