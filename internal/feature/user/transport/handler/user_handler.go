// Package handler provides HTTP handlers for the user feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"blog_backend/internal/feature/user/domain/entity"
	"blog_backend/internal/feature/user/transport/http/dto"
	"blog_backend/internal/platform/http/render"
	"blog_backend/internal/platform/http/validation"
	"blog_backend/internal/platform/session"
	"blog_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// UserUsecase defines the account operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	Join(ctx context.Context, username, password, email string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID uint, password string) (*entity.User, error)
}

// SessionManager binds the logged-in user to the client.
type SessionManager interface {
	Start(c *gin.Context, user *entity.User) error
	Refresh(c *gin.Context, user *entity.User) error
	Destroy(c *gin.Context) error
}

// UserHandler handles registration, login, logout and account updates.
type UserHandler struct {
	users    UserUsecase
	sessions SessionManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase, sessions SessionManager) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// JoinForm handles GET /join-form.
func (h *UserHandler) JoinForm(c *gin.Context) {
	render.Page(c, http.StatusOK, "user/join-form", nil)
}

// Join handles POST /join.
// - blank fields are 400
// - a taken username is 409 and nothing is written
// - on success the client is sent to the login form
func (h *UserHandler) Join(c *gin.Context) {
	var req dto.JoinReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("join validation failed", "error", err, "remote_addr", c.ClientIP())
		render.Error(c, apperr.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.users.Join(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		slog.Warn("join failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		render.Error(c, err)
		return
	}

	slog.Info("user joined", "user_id", user.ID, "username", user.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, session.LoginPath)
}

// LoginForm handles GET /login-form.
func (h *UserHandler) LoginForm(c *gin.Context) {
	render.Page(c, http.StatusOK, "user/login-form", nil)
}

// Login handles POST /login. A mismatch is 400 without revealing which field was wrong.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		render.Error(c, apperr.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		render.Error(c, err)
		return
	}

	if err := h.sessions.Start(c, user); err != nil {
		render.Error(c, err)
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "username", user.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout. It succeeds whether or not a session exists.
func (h *UserHandler) Logout(c *gin.Context) {
	if cur := session.Current(c); cur != nil {
		slog.Info("user logout", "user_id", cur.UserID, "username", cur.Username)
	}
	if err := h.sessions.Destroy(c); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// UpdateForm handles GET /user/update-form. Login is required.
func (h *UserHandler) UpdateForm(c *gin.Context) {
	render.Page(c, http.StatusOK, "user/update-form", nil)
}

// Update handles POST /user/update. Login is required.
// The session copy of the user is refreshed after the password is stored.
func (h *UserHandler) Update(c *gin.Context) {
	cur := session.Current(c)
	if cur == nil {
		c.Redirect(http.StatusSeeOther, session.LoginPath)
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("user update validation failed", "error", err, "user_id", cur.UserID)
		render.Error(c, apperr.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.users.UpdatePassword(c.Request.Context(), cur.UserID, req.Password)
	if err != nil {
		slog.Warn("user update failed", "error", err, "user_id", cur.UserID)
		render.Error(c, err)
		return
	}

	if err := h.sessions.Refresh(c, user); err != nil {
		render.Error(c, err)
		return
	}

	slog.Info("user updated", "user_id", user.ID, "username", user.Username)
	c.Redirect(http.StatusSeeOther, "/user/update-form")
}
