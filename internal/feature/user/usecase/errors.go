// Package usecase implements the business logic for the user feature.
package usecase

import "blog_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = apperr.NotFound("user not found")

	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = apperr.Conflict("username is already taken")

	// ErrInvalidCredentials is returned when the username/password pair does not match.
	ErrInvalidCredentials = apperr.BadRequest("invalid username or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = apperr.Unauthorized("session not found")

	// ErrSessionExpired is returned when a session has passed its expiry.
	ErrSessionExpired = apperr.Unauthorized("session has expired")
)
