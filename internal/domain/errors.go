package domain

import "errors"

var (
	// ErrRefreshTokenNotFound is returned when a refresh token to update no longer exists
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrIdentifierCollision is returned when every generated identifier collided with an existing one
	ErrIdentifierCollision = errors.New("could not generate a unique identifier")

	// ErrInvalidGrantType is returned for an unknown grant type
	ErrInvalidGrantType = errors.New("invalid grant type")
)
