package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewStores(t *testing.T) {
	db, _ := setupMockDB(t)
	cfg := testConfig()

	stores := NewStores(db, cfg, new(mockVerifier), zap.NewNop())

	assert.IsType(t, &ClientRepository{}, stores.Clients)
	assert.IsType(t, &UserRepository{}, stores.Users)
	assert.IsType(t, &ResourceServerRepository{}, stores.ResourceServers)
	assert.NotNil(t, stores.Provisioner)

	codes, ok := stores.Codes.(*CodeRepository)
	assert.True(t, ok)
	assert.Equal(t, cfg.CodeLifetime, codes.lifetime)
	assert.Equal(t, cfg.IDGenerationAttempts, codes.attempts)

	tokens, ok := stores.Tokens.(*TokenRepository)
	assert.True(t, ok)
	assert.Equal(t, cfg.IDGenerationAttempts, tokens.attempts)
}

func TestNewStores_RequiresVerifier(t *testing.T) {
	db, _ := setupMockDB(t)

	assert.Panics(t, func() {
		NewStores(db, testConfig(), nil, zap.NewNop())
	})
}
