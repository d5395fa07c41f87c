package session

import (
	"context"
	"testing"
	"time"

	"blog_backend/internal/feature/user/domain/entity"
	"blog_backend/internal/feature/user/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{
			name:    "success: create session",
			session: createTestSession("session-001", 1, 30*time.Minute),
			wantErr: false,
		},
		{
			name:    "failure: expired session",
			session: createTestSession("expired-session", 1, -1*time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mr := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, mr.Exists(repo.sessionKey(tt.session.ID)))
			} else {
				assert.NoError(t, err)
				assert.True(t, mr.Exists(repo.sessionKey(tt.session.ID)))

				ttl := mr.TTL(repo.sessionKey(tt.session.ID))
				assert.Greater(t, ttl, 29*time.Minute, "key expires with the session")
				assert.LessOrEqual(t, ttl, 30*time.Minute)
			}
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	s := createTestSession("find-session-id", 7, time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	found, err := repo.FindByID(ctx, "find-session-id")
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)
	assert.Equal(t, uint(7), found.UserID)
	assert.Equal(t, "alice", found.Username)
	assert.WithinDuration(t, s.ExpiresAt, found.ExpiresAt, time.Millisecond)

	found, err = repo.FindByID(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.Nil(t, found)
}

func TestSessionRedis_FindByID_AfterTTL(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("short", 1, time.Minute)))

	mr.FastForward(2 * time.Minute)

	_, err := repo.FindByID(ctx, "short")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Update(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	s := createTestSession("update-me", 1, time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	s.Email = "changed@example.com"
	require.NoError(t, repo.Update(ctx, s))

	found, err := repo.FindByID(ctx, "update-me")
	require.NoError(t, err)
	assert.Equal(t, "changed@example.com", found.Email)

	missing := createTestSession("missing", 1, time.Hour)
	assert.ErrorIs(t, repo.Update(ctx, missing), usecase.ErrSessionNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "update never recreates a session")
}

func TestSessionRedis_Delete(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("delete-me", 1, time.Hour)))

	require.NoError(t, repo.Delete(ctx, "delete-me"))

	_, err := repo.FindByID(ctx, "delete-me")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "delete-me"), usecase.ErrSessionNotFound)
}

func TestSessionRedis_DeleteExpired(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	// DeleteExpired is a no-op for Redis (TTL handles it)
	deleted, err := repo.DeleteExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestSessionRedis_KeyGeneration(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "test-prefix")

	assert.Equal(t, "test-prefix:session-id", repo.sessionKey("session-id"))
}
