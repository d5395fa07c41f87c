package usecase

import (
	"context"
	"errors"
	"testing"

	"blog_backend/internal/feature/user/domain/entity"
	"blog_backend/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uint, hash string) error
	ListFunc           func(ctx context.Context) ([]entity.User, error)
	CreateCalls        int
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func newTestUsecase(repo UserRepository) *UserUsecase {
	uc := NewUserUsecase(repo)
	uc.cost = bcrypt.MinCost
	return uc
}

func TestUserUsecase_Join(t *testing.T) {
	t.Run("successful join hashes the password", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				assert.NotEqual(t, "pw1", user.Password, "password is not hashed")
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw1")))
				user.ID = 7
				return nil
			},
		}

		user, err := newTestUsecase(repo).Join(context.Background(), "alice", "pw1", "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, 1, repo.CreateCalls)
	})

	t.Run("taken username is a conflict and writes nothing", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
				return &entity.User{ID: 1, Username: username}, nil
			},
		}

		_, err := newTestUsecase(repo).Join(context.Background(), "alice", "anything", "a@example.com")

		assert.ErrorIs(t, err, ErrUsernameTaken)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, 0, repo.CreateCalls)
	})

	t.Run("unique violation from storage is reported as conflict", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error { return ErrUsernameTaken },
		}

		_, err := newTestUsecase(repo).Join(context.Background(), "alice", "pw1", "a@example.com")

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		dbErr := errors.New("database error")
		repo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) { return nil, dbErr },
		}

		_, err := newTestUsecase(repo).Join(context.Background(), "alice", "pw1", "a@example.com")

		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, 0, repo.CreateCalls)
	})

	blanks := []struct {
		name                      string
		username, password, email string
	}{
		{"empty username", "", "pw", "a@example.com"},
		{"blank username", "   ", "pw", "a@example.com"},
		{"blank password", "alice", "\t", "a@example.com"},
		{"empty email", "alice", "pw", ""},
	}
	for _, tt := range blanks {
		t.Run("validation: "+tt.name, func(t *testing.T) {
			repo := &mockUserRepository{}

			_, err := newTestUsecase(repo).Join(context.Background(), tt.username, tt.password, tt.email)

			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
			assert.Equal(t, 0, repo.CreateCalls)
		})
	}
}

func TestUserUsecase_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &entity.User{ID: 1, Username: "alice", Password: string(hashed), Email: "alice@example.com"}

	repo := &mockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
			if username == alice.Username {
				return alice, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := newTestUsecase(repo)

	t.Run("correct pair returns the identity", func(t *testing.T) {
		user, err := uc.Login(context.Background(), "alice", "pw1")

		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
	})

	mismatches := []struct {
		name               string
		username, password string
	}{
		{"wrong password", "alice", "pw2"},
		{"unknown user", "mallory", "pw1"},
		{"password of another case", "alice", "PW1"},
	}
	for _, tt := range mismatches {
		t.Run("mismatch: "+tt.name, func(t *testing.T) {
			user, err := uc.Login(context.Background(), tt.username, tt.password)

			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		})
	}

	t.Run("blank password is a validation error", func(t *testing.T) {
		_, err := uc.Login(context.Background(), "alice", " ")

		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage failure is not reported as bad credentials", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		failing := newTestUsecase(&mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) { return nil, dbErr },
		})

		_, err := failing.Login(context.Background(), "alice", "pw1")

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUserUsecase_UpdatePassword(t *testing.T) {
	t.Run("overwrites the password hash", func(t *testing.T) {
		var stored string
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Username: "alice", Password: "old-hash"}, nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id uint, hash string) error {
				stored = hash
				return nil
			},
		}

		user, err := newTestUsecase(repo).UpdatePassword(context.Background(), 1, "new-pw")

		require.NoError(t, err)
		assert.Equal(t, stored, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-pw")))
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := newTestUsecase(&mockUserRepository{}).UpdatePassword(context.Background(), 99, "new-pw")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("blank password", func(t *testing.T) {
		_, err := newTestUsecase(&mockUserRepository{}).UpdatePassword(context.Background(), 1, "  ")

		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	})
}
