package usecase

import (
	"context"

	"mono_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities and
// their one-shot flash messages.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (cookie token value).
	// It returns ErrSessionNotFound for unknown or expired tokens.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session from storage.
	Delete(ctx context.Context, id string) error

	// AddFlash appends a one-shot message for the given session token.
	// Flash messages are keyed by token alone, so anonymous visitors
	// (token without a stored session) can carry them too.
	AddFlash(ctx context.Context, sessionID, message string) error

	// ConsumeFlashes returns all pending flash messages for the token and
	// removes them, so each message is shown on one rendered page only.
	ConsumeFlashes(ctx context.Context, sessionID string) ([]string, error)
}
