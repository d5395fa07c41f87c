// Package session stores login sessions and binds them to requests through a signed cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blog_backend/internal/feature/user/domain/entity"
	"blog_backend/internal/feature/user/usecase"

	"github.com/redis/go-redis/v9"
)

// errSessionExpired is returned when asked to store a session whose expiry has passed.
var errSessionExpired = errors.New("session already expired")

// SessionRedis implements usecase.SessionRepository using Redis.
// Each session is a JSON value whose key expires together with the session.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure SessionRedis implements SessionRepository.
var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// encode marshals session and returns the TTL left until it expires.
func encode(session *entity.Session) ([]byte, time.Duration, error) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil, 0, errSessionExpired
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, ttl, nil
}

// Create persists a new session to Redis.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, ttl, err := encode(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.sessionKey(session.ID), data, ttl).Err()
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Update overwrites an existing session. It never recreates a session that is already gone.
func (r *SessionRedis) Update(ctx context.Context, session *entity.Session) error {
	data, ttl, err := encode(session)
	if err != nil {
		if errors.Is(err, errSessionExpired) {
			return usecase.ErrSessionNotFound
		}
		return err
	}

	ok, err := r.client.SetXX(ctx, r.sessionKey(session.ID), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session.
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes expired sessions (handled by Redis TTL).
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
