package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"blog_backend/internal/feature/user/domain/entity"
	"blog_backend/internal/feature/user/usecase"
	"blog_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultCookieName is used when Options.CookieName is empty.
	DefaultCookieName = "BLOGSESSION"

	// LoginPath is where anonymous requests to protected routes are sent.
	LoginPath = "/login-form"

	contextKey = "session"
)

// SessionService manages session records.
// Following Go convention: interfaces are defined by the consumer.
type SessionService interface {
	TTL() time.Duration
	Start(ctx context.Context, user *entity.User) (*entity.Session, error)
	Resolve(ctx context.Context, id string) (*entity.Session, error)
	Refresh(ctx context.Context, id string, user *entity.User) (*entity.Session, error)
	Destroy(ctx context.Context, id string) error
}

// TokenCodec signs session IDs into cookie values and back.
type TokenCodec interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (string, error)
}

// Options configures the session cookie.
type Options struct {
	CookieName string
	Secure     bool
}

// Manager binds session records to requests through a signed, HttpOnly cookie.
type Manager struct {
	sessions   SessionService
	codec      TokenCodec
	cookieName string
	secure     bool
}

// NewManager creates a new Manager.
func NewManager(sessions SessionService, codec TokenCodec, opts Options) *Manager {
	name := opts.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{
		sessions:   sessions,
		codec:      codec,
		cookieName: name,
		secure:     opts.Secure,
	}
}

// Load resolves the session cookie and stores the live session in the gin context.
// A cookie that is invalid, expired or names a destroyed session is cleared and the request
// continues anonymously. When the store fails, the request is anonymous but the cookie is kept.
func (m *Manager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sid, err := m.codec.Parse(token)
		if err != nil {
			slog.Debug("rejected session cookie", "error", err, "remote_addr", c.ClientIP())
			m.clearCookie(c)
			c.Next()
			return
		}

		s, err := m.sessions.Resolve(c.Request.Context(), sid)
		if err != nil {
			// Only a session that is gone ends the login. A store outage keeps the cookie.
			if apperr.KindOf(err) == apperr.KindUnauthorized {
				m.clearCookie(c)
			} else {
				slog.Error("failed to resolve session", "error", err)
			}
			c.Next()
			return
		}

		SetCurrent(c, s)
		c.Next()
	}
}

// RequireLogin redirects requests without a session to the login form.
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Current(c) == nil {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Current returns the session of the request, or nil for anonymous requests.
func Current(c *gin.Context) *entity.Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*entity.Session)
	return s
}

// SetCurrent attaches s to the request. Passing nil makes the request anonymous.
func SetCurrent(c *gin.Context, s *entity.Session) {
	c.Set(contextKey, s)
}

// Start opens a session for user and sets the cookie. Any session the request already had
// is destroyed so a login always gets a fresh identifier.
func (m *Manager) Start(c *gin.Context, user *entity.User) error {
	ctx := c.Request.Context()

	if old := Current(c); old != nil {
		if err := m.sessions.Destroy(ctx, old.ID); err != nil {
			slog.Warn("failed to destroy previous session", "error", err)
		}
	}

	s, err := m.sessions.Start(ctx, user)
	if err != nil {
		return err
	}

	token, err := m.codec.Sign(s.ID, s.ExpiresAt)
	if err != nil {
		return err
	}

	m.setCookie(c, token, int(m.sessions.TTL().Seconds()))
	SetCurrent(c, s)
	return nil
}

// Refresh replaces the identity snapshot of the current session with user's fields.
func (m *Manager) Refresh(c *gin.Context, user *entity.User) error {
	cur := Current(c)
	if cur == nil {
		return usecase.ErrSessionNotFound
	}

	s, err := m.sessions.Refresh(c.Request.Context(), cur.ID, user)
	if err != nil {
		return err
	}
	SetCurrent(c, s)
	return nil
}

// Destroy ends the current session, if any, and clears the cookie.
func (m *Manager) Destroy(c *gin.Context) error {
	m.clearCookie(c)

	cur := Current(c)
	if cur == nil {
		return nil
	}
	SetCurrent(c, nil)
	return m.sessions.Destroy(c.Request.Context(), cur.ID)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}

func (m *Manager) clearCookie(c *gin.Context) {
	m.setCookie(c, "", -1)
}
