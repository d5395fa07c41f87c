// Package router builds the gin engine and its route table.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"blog_backend/internal/app/web"
	boardhandler "blog_backend/internal/feature/board/transport/handler"
	userhandler "blog_backend/internal/feature/user/transport/handler"
	platformhandler "blog_backend/internal/platform/http/handler"
	"blog_backend/internal/platform/http/middleware"
	"blog_backend/internal/platform/http/validation"
	"blog_backend/internal/platform/session"
	"blog_backend/internal/shared/ratelimiter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the feature handlers mounted by the router.
type Handlers struct {
	User   *userhandler.UserHandler
	Board  *boardhandler.BoardHandler
	Health *platformhandler.HealthHandler
}

// Options configures the middleware stack.
type Options struct {
	Sessions *session.Manager

	// AuthLimiter throttles POST /login and POST /join. Nil disables throttling.
	AuthLimiter ratelimiter.RateLimiterInterface

	// CORSAllowedOrigins enables CORS for the listed origins. Empty means same-origin only.
	CORSAllowedOrigins []string

	// TrustedProxies are the peers whose X-Forwarded-For decides the client IP. Empty trusts none,
	// so rate limiting keys on the peer address.
	TrustedProxies []string

	HSTS bool
}

// NewRouter returns the engine serving every page and action of the blog.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	validation.Register()

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		slog.Error("invalid trusted proxies; trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.RequestID(),
		middleware.RequestLog(),
		middleware.Recovery(),
		middleware.SecurityHeaders(opts.HSTS),
	)
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodHead},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(web.MustTemplates())

	// Health check, outside the session middleware
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	limit := func(c *gin.Context) { c.Next() }
	if opts.AuthLimiter != nil {
		limit = middleware.RateLimit(opts.AuthLimiter)
	}

	app := r.Group("/")
	app.Use(opts.Sessions.Load())
	{
		app.GET("/", h.Board.Index)
		app.GET("/board/:id", h.Board.Detail)

		app.GET("/join-form", h.User.JoinForm)
		app.POST("/join", limit, h.User.Join)
		app.GET("/login-form", h.User.LoginForm)
		app.POST("/login", limit, h.User.Login)
		app.GET("/logout", h.User.Logout)
	}

	// Login required; anonymous requests are redirected to the login form
	auth := app.Group("/")
	auth.Use(opts.Sessions.RequireLogin())
	{
		auth.GET("/board/save-form", h.Board.SaveForm)
		auth.POST("/board/save", h.Board.Save)
		auth.GET("/board/:id/board-update", h.Board.UpdateForm)
		auth.POST("/board/:id/update-form", h.Board.Update)
		auth.POST("/board/:id/delete", h.Board.Delete)

		auth.GET("/user/update-form", h.User.UpdateForm)
		auth.POST("/user/update", h.User.Update)
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})

	return r
}
