package password

import (
	"testing"

	"github.com/manorfm/oauthstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ domain.PasswordVerifier = (*BcryptVerifier)(nil)
	_ domain.DecoyHasher      = (*BcryptVerifier)(nil)
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	assert.NotEqual(t, "pw", hash)
	assert.NoError(t, CheckPassword("pw", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("pw", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestBcryptVerifier_Verify(t *testing.T) {
	verifier, err := NewBcryptVerifier()
	require.NoError(t, err)

	hash, err := HashPassword("pw")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "matching password", password: "pw", hash: hash, want: true},
		{name: "wrong password", password: "nope", hash: hash, want: false},
		{name: "malformed hash", password: "pw", hash: "plain", want: false},
		{name: "empty hash", password: "pw", hash: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verifier.Verify(tt.password, tt.hash))
		})
	}
}

func TestBcryptVerifier_DecoyHash(t *testing.T) {
	verifier, err := NewBcryptVerifier()
	require.NoError(t, err)

	decoy := verifier.DecoyHash()
	assert.NotEmpty(t, decoy)
	assert.False(t, verifier.Verify("pw", decoy))
	assert.True(t, verifier.Verify(decoyPassword, decoy))
}
