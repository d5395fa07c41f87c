package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"blog_backend/internal/app/di"
	"blog_backend/internal/config"
	platformdb "blog_backend/internal/platform/db"
	platformredis "blog_backend/internal/platform/redis"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
	limiterIdle     = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger())

	// db
	db, err := platformdb.Open(cfg.DB)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
	}
	if cfg.DB.RunMigrations {
		if err := di.Migrate(db); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if tmp, err := platformredis.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword); err != nil {
			slog.Warn("redis unavailable; sessions stored in the database and cache disabled", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	app := di.NewApp(db, rdb, di.AppConfig{
		SessionSecret:      cfg.SessionSecret,
		SessionTTL:         cfg.SessionTTL,
		SessionCookie:      cfg.SessionCookie,
		CookieSecure:       cfg.CookieSecure,
		CacheTTL:           cfg.CacheTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustedProxies:     cfg.TrustedProxies,
		AuthRatePerMin:     cfg.AuthRatePerMin,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go housekeeping(ctx, app)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Env, "redis", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// housekeeping prunes idle rate-limit buckets and, for database-backed sessions,
// expired session rows until ctx is cancelled.
func housekeeping(ctx context.Context, app *di.App) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.AuthLimiter.Prune(limiterIdle); n > 0 {
				slog.Debug("rate limiter pruned", "keys", n)
			}
			if app.Sweeper == nil {
				continue
			}
			n, err := app.Sweeper.Sweep(ctx)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			slog.Info("expired sessions removed", "count", n)
		}
	}
}
