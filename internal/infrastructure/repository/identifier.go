package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/manorfm/oauthstore/internal/domain"
	"go.uber.org/zap"
)

const (
	// identifierBytes is the entropy of generated codes and tokens
	identifierBytes = 32

	uniqueViolation = "23505"
)

// randomIdentifier returns identifierBytes of crypto/rand output, hex encoded
func randomIdentifier() (string, error) {
	b := make([]byte, identifierBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// storageNow is the current instant as it round-trips through a TIMESTAMPTZ column
func storageNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// retryOnCollision runs insert until it succeeds, fails with anything other
// than a unique violation, or attempts run out.
func retryOnCollision(attempts int, logger *zap.Logger, insert func() error) error {
	for i := 1; i <= attempts; i++ {
		err := insert()
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		logger.Warn("generated identifier collided", zap.Int("attempt", i), zap.Int("max_attempts", attempts))
	}
	return domain.ErrIdentifierCollision
}

// redact keeps enough of a secret identifier to correlate log lines
func redact(s string) string {
	const keep = 8
	if len(s) <= keep {
		return s
	}
	return s[:keep] + "..."
}
