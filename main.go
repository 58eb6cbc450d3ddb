// @title Shelf API
// @version 1.0
// @description Todo and book records behind token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rise-labs/shelf-backend/internal/cache"
	"github.com/rise-labs/shelf-backend/internal/config"
	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/handler"
	"github.com/rise-labs/shelf-backend/internal/logger"
	"github.com/rise-labs/shelf-backend/internal/metrics"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout      = 10 * time.Second
	sessionPurgeInterval = 15 * time.Minute
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	lg, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()
	log := lg.Sugar()

	if err := run(cfg, log); err != nil {
		log.Errorw("shelf stopped", "error", err)
		_ = lg.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ttl, err := cfg.Auth.AccessTTL()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := db.NewPostgres(pool)
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	m := metrics.New()
	deps := map[string]handler.Pinger{"postgres": store}

	var (
		issuer   service.TokenIssuer
		verifier service.TokenVerifier
		revoker  service.TokenRevoker
	)
	switch cfg.Auth.Mode {
	case config.AuthModeSession:
		sessions, err := service.NewSessionAuth(store, ttl)
		if err != nil {
			return err
		}
		issuer, verifier, revoker = sessions, sessions, sessions
	default:
		tokens, err := service.NewTokenManager(cfg.Auth.JWTSecret, ttl)
		if err != nil {
			return err
		}
		issuer, verifier = tokens, tokens

		if cfg.Redis.URL != "" {
			client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			denylist := cache.NewDenylist(client, "")
			dv := service.NewDenylistVerifier(tokens, denylist)
			verifier, revoker = dv, dv
			deps["redis"] = denylist
		}
	}
	log.Infow("auth configured", "mode", cfg.Auth.Mode, "ttl", ttl, "revocation", revoker != nil)

	authSvc := service.NewAuthService(store, service.NewPasswordHasher(0, 0), issuer, revoker, ttl)
	router := handler.NewRouter(handler.RouterConfig{
		Auth:               handler.NewAuthHandler(authSvc, m, log),
		Books:              handler.NewBookHandler(service.NewBookService(store), m, log),
		Todos:              handler.NewTodoHandler(service.NewTodoService(store), log),
		Health:             handler.NewHealthHandler(deps, log),
		Verifier:           verifier,
		Metrics:            m,
		Log:                log,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", cfg.HTTP.Addr, "gin_mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Auth.Mode == config.AuthModeSession {
		g.Go(func() error {
			purgeSessions(gctx, store, log)
			return nil
		})
	}

	return g.Wait()
}

// purgeSessions drops expired store sessions until ctx is done.
func purgeSessions(ctx context.Context, store *db.Postgres, log *zap.SugaredLogger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.PurgeExpiredSessions(ctx, now)
			if err != nil {
				log.Warnw("purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				log.Debugw("purged expired sessions", "count", n)
			}
		}
	}
}
