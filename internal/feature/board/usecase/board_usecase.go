package usecase

import (
	"context"
	"errors"
	"fmt"

	"blog_backend/internal/feature/board/domain/entity"
	"blog_backend/internal/shared/apperr"
)

// BoardRepository abstracts the persistence layer for boards.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BoardRepository interface {
	// FindAll returns every board with its owner, newest (highest ID) first.
	FindAll(ctx context.Context) ([]entity.Board, error)

	// FindByID returns the board with its owner, or ErrBoardNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Board, error)

	// Create inserts board and sets its ID.
	Create(ctx context.Context, board *entity.Board) error

	// UpdateContent overwrites title and content. It returns ErrBoardNotFound when no row matched.
	UpdateContent(ctx context.Context, id uint, title, content string) error

	// DeleteByID removes the board. It returns ErrBoardNotFound when no row matched.
	DeleteByID(ctx context.Context, id uint) error
}

// BoardUsecase implements board listing, viewing and owner-only editing.
type BoardUsecase struct {
	boards BoardRepository
}

// NewBoardUsecase creates a new BoardUsecase.
func NewBoardUsecase(boards BoardRepository) *BoardUsecase {
	return &BoardUsecase{boards: boards}
}

// List returns all boards in descending ID order.
func (u *BoardUsecase) List(ctx context.Context) ([]entity.Board, error) {
	boards, err := u.boards.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// Get returns a single board.
func (u *BoardUsecase) Get(ctx context.Context, id uint) (*entity.Board, error) {
	return u.boards.FindByID(ctx, id)
}

// Create stores a new board owned by ownerID.
func (u *BoardUsecase) Create(ctx context.Context, ownerID uint, title, content string) (*entity.Board, error) {
	if err := apperr.RequireText(
		apperr.Field{Name: "title", Value: title},
		apperr.Field{Name: "content", Value: content},
	); err != nil {
		return nil, err
	}

	board := &entity.Board{Title: title, Content: content, UserID: ownerID}
	if err := u.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// GetForEdit returns the board when userID owns it.
func (u *BoardUsecase) GetForEdit(ctx context.Context, userID, id uint) (*entity.Board, error) {
	board, err := u.boards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !board.IsOwner(userID) {
		return nil, ErrNotBoardOwner
	}
	return board, nil
}

// Update replaces title and content of a board owned by userID.
// Ownership is checked before the fields so a non-owner is always refused.
func (u *BoardUsecase) Update(ctx context.Context, userID, id uint, title, content string) (*entity.Board, error) {
	board, err := u.GetForEdit(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := apperr.RequireText(
		apperr.Field{Name: "title", Value: title},
		apperr.Field{Name: "content", Value: content},
	); err != nil {
		return nil, err
	}

	if err := u.boards.UpdateContent(ctx, id, title, content); err != nil {
		return nil, err
	}

	board.Title = title
	board.Content = content
	return board, nil
}

// Delete removes a board owned by userID. A board that is already gone is ErrBoardGone.
func (u *BoardUsecase) Delete(ctx context.Context, userID, id uint) error {
	board, err := u.boards.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBoardNotFound) {
			return ErrBoardGone
		}
		return err
	}
	if !board.IsOwner(userID) {
		return ErrNotBoardOwner
	}

	if err := u.boards.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrBoardNotFound) {
			return ErrBoardGone
		}
		return err
	}
	return nil
}
