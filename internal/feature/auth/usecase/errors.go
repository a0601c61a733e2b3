// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by name or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrNameAlreadyExists is returned when attempting to create a user with a name that already exists.
	ErrNameAlreadyExists = errors.New("name already exists")

	// ErrInvalidCredentials is returned when the name/password pair does not match a user.
	ErrInvalidCredentials = errors.New("invalid name or password")

	// ErrSessionNotFound is returned when a session cannot be found by token.
	ErrSessionNotFound = errors.New("session not found")
)
