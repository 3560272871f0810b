// Package common defines shared constants and sentinel errors used across
// client and server layers of authkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrUsernameTaken is the authoritative duplicate signal: the users
	// repository translates the store's uniqueness violation into it, and
	// the account service translates the pre-insert lookup hit into the
	// same value.
	ErrUsernameTaken = errors.New("username already taken")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// ErrValidation is wrapped with the first violated rule, e.g.
	// fmt.Errorf("%w: username must be 3-50 characters", ErrValidation).
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials deliberately covers both "unknown user" and
	// "wrong password" so responses cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors (invalid/malformed vs expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
