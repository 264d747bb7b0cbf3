package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/manorfm/oauthstore/internal/domain"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var clientColumns = []string{"client_id", "redirect_uris", "client_secret", "scopes", "confidential_client", "first_party", "allowed_grant_type"}

func TestClientRepository_FindByID(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		setup    func(mock pgxmock.PgxPoolIface)
		want     *domain.Client
		wantErr  bool
	}{
		{
			name:     "confidential client",
			clientID: "C1",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM oauth_clients WHERE client_id").
					WithArgs("C1").
					WillReturnRows(pgxmock.NewRows(clientColumns).
						AddRow("C1", []string{"https://cb"}, strPtr("s3cret"), []string{"email", "profile"}, boolPtr(true), true, "authorization_code"))
			},
			want: &domain.Client{
				ClientID:         "C1",
				RedirectURIs:     []string{"https://cb"},
				ClientSecret:     strPtr("s3cret"),
				ValidScopes:      []string{"email", "profile"},
				Confidential:     boolPtr(true),
				FirstParty:       true,
				AllowedGrantType: domain.GrantTypeAuthorizationCode,
			},
		},
		{
			name:     "public client keeps absent fields absent",
			clientID: "public",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM oauth_clients WHERE client_id").
					WithArgs("public").
					WillReturnRows(pgxmock.NewRows(clientColumns).
						AddRow("public", nil, nil, []string{}, nil, false, "implicit"))
			},
			want: &domain.Client{
				ClientID:         "public",
				ValidScopes:      []string{},
				AllowedGrantType: domain.GrantTypeImplicit,
			},
		},
		{
			name:     "not found",
			clientID: "missing",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM oauth_clients WHERE client_id").
					WithArgs("missing").
					WillReturnError(pgx.ErrNoRows)
			},
			want: nil,
		},
		{
			name:     "storage failure",
			clientID: "C1",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM oauth_clients WHERE client_id").
					WithArgs("C1").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setup(mock)
			repo := NewClientRepository(db, zap.NewNop())

			got, err := repo.FindByID(context.Background(), tt.clientID)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsStorageError(err))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClientRepository_FindByIDDistinguishesAbsentFromEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewClientRepository(db, zap.NewNop())

	mock.ExpectQuery("FROM oauth_clients WHERE client_id").
		WithArgs("C2").
		WillReturnRows(pgxmock.NewRows(clientColumns).
			AddRow("C2", []string{}, nil, nil, boolPtr(false), false, "client_credentials"))

	got, err := repo.FindByID(context.Background(), "C2")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotNil(t, got.RedirectURIs)
	assert.Empty(t, got.RedirectURIs)
	assert.Nil(t, got.ValidScopes)
	assert.Nil(t, got.ClientSecret)
	require.NotNil(t, got.Confidential)
	assert.False(t, *got.Confidential)
	assert.NoError(t, mock.ExpectationsWereMet())
}
