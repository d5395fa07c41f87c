package usecase

import (
	"context"
	"errors"
	"fmt"

	"blog_backend/internal/feature/user/domain/entity"
	"blog_backend/internal/shared/apperr"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username does not exist so that
// unknown users and wrong passwords take the same time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUsernameTaken on a unique violation.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns ErrUserNotFound when no user has the username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword overwrites the stored password hash.
	UpdatePassword(ctx context.Context, id uint, hash string) error

	// List returns all users ordered by ID.
	List(ctx context.Context) ([]entity.User, error)
}

// UserUsecase implements registration, login and profile updates.
type UserUsecase struct {
	users UserRepository
	cost  int
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users, cost: bcrypt.DefaultCost}
}

// Join registers a new user after checking that the username is free.
// The pre-insert check gives the common case a clean conflict; the unique index
// catches two registrations racing past it.
func (u *UserUsecase) Join(ctx context.Context, username, password, email string) (*entity.User, error) {
	if err := apperr.RequireText(
		apperr.Field{Name: "username", Value: username},
		apperr.Field{Name: "password", Value: password},
		apperr.Field{Name: "email", Value: email},
	); err != nil {
		return nil, err
	}

	_, err := u.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Password: string(hashed), Email: email}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns the user matching the username/password pair.
// Any mismatch yields ErrInvalidCredentials.
func (u *UserUsecase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	if err := apperr.RequireText(
		apperr.Field{Name: "username", Value: username},
		apperr.Field{Name: "password", Value: password},
	); err != nil {
		return nil, err
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword replaces the password of the user and returns the updated user.
func (u *UserUsecase) UpdatePassword(ctx context.Context, userID uint, password string) (*entity.User, error) {
	if err := apperr.RequireText(apperr.Field{Name: "password", Value: password}); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return nil, err
	}

	user.Password = string(hashed)
	return user, nil
}

// List returns every registered user.
func (u *UserUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}
