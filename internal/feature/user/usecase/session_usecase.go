package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog_backend/internal/feature/user/domain/entity"

	"github.com/google/uuid"
)

// DefaultSessionTTL is used when a non-positive TTL is configured.
const DefaultSessionTTL = 30 * time.Minute

// sessionUsecase manages the lifecycle of login sessions.
type sessionUsecase struct {
	sessions SessionRepository
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// NewSessionUsecase creates a new sessionUsecase.
func NewSessionUsecase(sessions SessionRepository, ttl time.Duration) *sessionUsecase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionUsecase{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// TTL returns the lifetime given to new sessions.
func (u *sessionUsecase) TTL() time.Duration {
	return u.ttl
}

// Start opens a new session for user.
func (u *sessionUsecase) Start(ctx context.Context, user *entity.User) (*entity.Session, error) {
	now := u.now()
	s := &entity.Session{
		ID:        u.newID(),
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	s.Apply(user)

	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// Resolve returns the live session with the given ID.
// Expired sessions are removed and reported as ErrSessionExpired.
func (u *sessionUsecase) Resolve(ctx context.Context, id string) (*entity.Session, error) {
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.IsExpired(u.now()) {
		if err := u.sessions.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("failed to delete expired session", "error", err)
		}
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Refresh replaces the identity snapshot stored in the session with user's current fields.
func (u *sessionUsecase) Refresh(ctx context.Context, id string, user *entity.User) (*entity.Session, error) {
	s, err := u.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Apply(user)
	if err := u.sessions.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy ends the session. Destroying a session that is already gone succeeds.
func (u *sessionUsecase) Destroy(ctx context.Context, id string) error {
	if err := u.sessions.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// Sweep removes expired sessions from storage.
func (u *sessionUsecase) Sweep(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}
