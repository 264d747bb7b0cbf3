package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// decoyPassword seeds the hash compared against when a username is unknown.
const decoyPassword = "oauthstore-decoy-password"

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword checks if a password matches its hash
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return errors.New("invalid password")
		}
		return err
	}
	return nil
}

// BcryptVerifier verifies user passwords against bcrypt hashes.
type BcryptVerifier struct {
	decoy string
}

// NewBcryptVerifier creates a verifier and precomputes its decoy hash
func NewBcryptVerifier() (*BcryptVerifier, error) {
	decoy, err := HashPassword(decoyPassword)
	if err != nil {
		return nil, err
	}
	return &BcryptVerifier{decoy: decoy}, nil
}

// Verify reports whether password matches hash
func (v *BcryptVerifier) Verify(password, hash string) bool {
	return CheckPassword(password, hash) == nil
}

// DecoyHash returns a valid bcrypt hash that no caller-supplied password is expected to match
func (v *BcryptVerifier) DecoyHash() string {
	return v.decoy
}
