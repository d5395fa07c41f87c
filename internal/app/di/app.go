// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"blog_backend/internal/app/router"
	boardhandler "blog_backend/internal/feature/board/transport/handler"
	boardusecase "blog_backend/internal/feature/board/usecase"
	useradapters "blog_backend/internal/feature/user/adapters"
	userhandler "blog_backend/internal/feature/user/transport/handler"
	userusecase "blog_backend/internal/feature/user/usecase"
	platformhandler "blog_backend/internal/platform/http/handler"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/session"
	"blog_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AppConfig holds the settings needed to assemble the HTTP application.
type AppConfig struct {
	SessionSecret      string
	SessionTTL         time.Duration
	SessionCookie      string
	CookieSecure       bool
	CacheTTL           time.Duration
	CORSAllowedOrigins []string
	TrustedProxies     []string
	AuthRatePerMin     int
}

// SessionSweeper removes expired sessions from storage.
type SessionSweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// App is the assembled HTTP application.
type App struct {
	Router *gin.Engine

	// Sweeper is set when sessions live in the database and need periodic cleanup.
	Sweeper SessionSweeper

	// AuthLimiter throttles POST /login and POST /join; its idle keys should be pruned periodically.
	AuthLimiter *ratelimiter.RateLimiter
}

// NewUserUsecase creates the user usecase over the database.
func NewUserUsecase(db *gorm.DB) *userusecase.UserUsecase {
	return userusecase.NewUserUsecase(useradapters.NewUserRepository(db))
}

// NewBoardUsecase creates the board usecase. Reads are cached when rdb is not nil.
func NewBoardUsecase(rdb *redis.Client, db *gorm.DB, cacheTTL time.Duration) *boardusecase.BoardUsecase {
	return boardusecase.NewBoardUsecase(NewBoardRepository(rdb, db, cacheTTL))
}

// NewApp wires repositories, usecases and handlers into the router.
// A nil rdb keeps sessions in the database and disables the board cache.
func NewApp(db *gorm.DB, rdb *redis.Client, cfg AppConfig) *App {
	sessionUC := userusecase.NewSessionUsecase(NewSessionRepository(rdb, db), cfg.SessionTTL)
	sessions := session.NewManager(sessionUC, jwtmw.NewSigner(cfg.SessionSecret), session.Options{
		CookieName: cfg.SessionCookie,
		Secure:     cfg.CookieSecure,
	})

	userH := userhandler.NewUserHandler(NewUserUsecase(db), sessions)
	boardH := boardhandler.NewBoardHandler(NewBoardUsecase(rdb, db, cfg.CacheTTL))
	healthH := platformhandler.NewHealthHandler(healthChecks(db, rdb)...)

	limiter := ratelimiter.PerMinute(cfg.AuthRatePerMin)

	app := &App{
		Router: router.NewRouter(router.Handlers{
			User:   userH,
			Board:  boardH,
			Health: healthH,
		}, router.Options{
			Sessions:           sessions,
			AuthLimiter:        limiter,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			TrustedProxies:     cfg.TrustedProxies,
			HSTS:               cfg.CookieSecure,
		}),
		AuthLimiter: limiter,
	}
	if rdb == nil {
		app.Sweeper = sessionUC
	}
	return app
}

func healthChecks(db *gorm.DB, rdb *redis.Client) []platformhandler.Check {
	checks := []platformhandler.Check{{
		Name:     "db",
		Critical: true,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return checks
}
