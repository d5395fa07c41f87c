// Package handler provides HTTP handlers for the board feature.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"blog_backend/internal/feature/board/domain/entity"
	"blog_backend/internal/feature/board/transport/http/dto"
	"blog_backend/internal/feature/board/usecase"
	"blog_backend/internal/platform/http/param"
	"blog_backend/internal/platform/http/render"
	"blog_backend/internal/platform/http/validation"
	"blog_backend/internal/platform/session"
	"blog_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// BoardUsecase defines the board operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type BoardUsecase interface {
	List(ctx context.Context) ([]entity.Board, error)
	Get(ctx context.Context, id uint) (*entity.Board, error)
	Create(ctx context.Context, ownerID uint, title, content string) (*entity.Board, error)
	GetForEdit(ctx context.Context, userID, id uint) (*entity.Board, error)
	Update(ctx context.Context, userID, id uint, title, content string) (*entity.Board, error)
	Delete(ctx context.Context, userID, id uint) error
}

// BoardHandler handles board pages and actions.
type BoardHandler struct {
	boards BoardUsecase
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boards BoardUsecase) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// boardID binds the {id} path parameter. An id that is not a positive integer names no board.
func boardID(c *gin.Context) (uint, bool) {
	id, err := param.ID(c, "id")
	if err != nil {
		slog.Warn("invalid board id", "id", c.Param("id"), "error", err)
		render.Error(c, usecase.ErrBoardNotFound)
		return 0, false
	}
	return uint(id), true
}

// requireSession returns the session of a logged-in request or redirects to the login form.
func requireSession(c *gin.Context) (uint, bool) {
	cur := session.Current(c)
	if cur == nil {
		c.Redirect(http.StatusSeeOther, session.LoginPath)
		return 0, false
	}
	return cur.UserID, true
}

// Index handles GET /.
func (h *BoardHandler) Index(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context())
	if err != nil {
		render.Error(c, err)
		return
	}
	slog.Debug("boards listed", "count", len(boards))
	render.Page(c, http.StatusOK, "index", gin.H{"Boards": boards})
}

// Detail handles GET /board/{id}.
func (h *BoardHandler) Detail(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), id)
	if err != nil {
		render.Error(c, err)
		return
	}

	cur := session.Current(c)
	render.Page(c, http.StatusOK, "board/detail", gin.H{
		"Board":   board,
		"IsOwner": cur != nil && board.IsOwner(cur.UserID),
	})
}

// SaveForm handles GET /board/save-form. Login is required.
func (h *BoardHandler) SaveForm(c *gin.Context) {
	render.Page(c, http.StatusOK, "board/save-form", nil)
}

// Save handles POST /board/save. Login is required; the session user owns the new board.
func (h *BoardHandler) Save(c *gin.Context) {
	userID, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.SaveBoardReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("board save validation failed", "error", err, "user_id", userID)
		render.Error(c, apperr.BadRequest(validation.Message(err)))
		return
	}

	board, err := h.boards.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		render.Error(c, err)
		return
	}

	slog.Info("board created", "board_id", board.ID, "user_id", userID)
	c.Redirect(http.StatusSeeOther, "/")
}

// UpdateForm handles GET /board/{id}/board-update. Only the owner may open it.
func (h *BoardHandler) UpdateForm(c *gin.Context) {
	userID, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := boardID(c)
	if !ok {
		return
	}

	board, err := h.boards.GetForEdit(c.Request.Context(), userID, id)
	if err != nil {
		slog.Warn("board update form refused", "error", err, "board_id", id, "user_id", userID)
		render.Error(c, err)
		return
	}

	render.Page(c, http.StatusOK, "board/board-update", gin.H{"Board": board})
}

// Update handles POST /board/{id}/update-form. Only the owner may change title and content.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := boardID(c)
	if !ok {
		return
	}

	var req dto.UpdateBoardReq
	if err := c.ShouldBind(&req); err != nil {
		render.Error(c, apperr.BadRequest(validation.Message(err)))
		return
	}

	if _, err := h.boards.Update(c.Request.Context(), userID, id, req.Title, req.Content); err != nil {
		slog.Warn("board update failed", "error", err, "board_id", id, "user_id", userID)
		render.Error(c, err)
		return
	}

	slog.Info("board updated", "board_id", id, "user_id", userID)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/board/%d", id))
}

// Delete handles POST /board/{id}/delete. Only the owner may delete.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := boardID(c)
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), userID, id); err != nil {
		slog.Warn("board delete failed", "error", err, "board_id", id, "user_id", userID)
		render.Error(c, err)
		return
	}

	slog.Info("board deleted", "board_id", id, "user_id", userID)
	c.Redirect(http.StatusSeeOther, "/")
}
