package usecase

import (
	"context"

	"blog_backend/internal/feature/user/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID returns ErrSessionNotFound when the session does not exist.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Update overwrites the identity snapshot of an existing session.
	Update(ctx context.Context, session *entity.Session) error

	// Delete removes a session. It returns ErrSessionNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all expired sessions and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
