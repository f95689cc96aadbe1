package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrDuplicateID        = errors.New("duplicate user id")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors. Each verification failure is distinguishable
	// so callers can pick user messaging vs forced re-authentication.
	ErrTokenMissing   = errors.New("no token provided")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
