package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/pidgin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pidgin-backend/internal/auth"
	"github.com/heartmarshall/pidgin-backend/internal/config"
	"github.com/heartmarshall/pidgin-backend/internal/service/admin"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation"
	"github.com/heartmarshall/pidgin-backend/internal/transport/middleware"
	"github.com/heartmarshall/pidgin-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// phrase index, starts the HTTP server and blocks until ctx is cancelled,
// then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("phrase_source", cfg.Translator.Source),
		slog.String("remote_provider", cfg.Remote.Provider),
	)

	// Database (only for the postgres phrase source)
	var (
		db      postgres.DB
		dbCheck interface {
			Ping(ctx context.Context) error
		}
	)
	if cfg.Translator.Source == config.SourcePostgres {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		db, dbCheck = pool, pool
		logger.Info("database connected")
	}

	source, err := newPhraseSource(cfg.Translator, db, logger)
	if err != nil {
		return err
	}

	remote, err := newRemoteTranslator(cfg.Remote, logger)
	if err != nil {
		return err
	}

	translator := translation.NewService(logger, source, remote, translation.Options{
		ChunkWindow:     cfg.Translator.ChunkWindow,
		FuzzyThreshold:  cfg.Translator.FuzzyThreshold,
		SuggestionLimit: cfg.Translator.SuggestionLimit,
		MaxTextLength:   cfg.Translator.MaxTextLength,
	})

	if _, err := translator.Reload(ctx); err != nil {
		return fmt.Errorf("initial phrase load: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, cfg.Server.TrustProxy)
	defer limiter.Stop()

	deps := rest.RouterDeps{
		Translate: rest.NewTranslateHandler(translator, logger),
		Health:    rest.NewHealthHandler(translator, dbCheck, Version),
		Limiter:   limiter,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	}

	if cfg.Admin.Enabled() {
		jwtManager := auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.TokenTTL)
		adminService := admin.NewService(logger, jwtManager, translator, cfg.Admin)
		deps.Admin = rest.NewAdminHandler(adminService, cfg.Server.TrustProxy, logger)
		deps.Tokens = adminService
		logger.Info("admin endpoints enabled", slog.String("username", cfg.Admin.Username))
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
