// Package usecase implements the business logic for the board feature.
package usecase

import "blog_backend/internal/shared/apperr"

var (
	// ErrBoardNotFound is returned when a board cannot be found by ID.
	ErrBoardNotFound = apperr.NotFound("board not found")

	// ErrBoardGone is returned when deleting a board that no longer exists.
	ErrBoardGone = apperr.NotFound("board has already been deleted")

	// ErrNotBoardOwner is returned when a user edits or deletes someone else's board.
	ErrNotBoardOwner = apperr.Forbidden("you are not the owner of this board")
)
