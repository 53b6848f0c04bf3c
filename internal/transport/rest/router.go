package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/pidgin-backend/internal/config"
	"github.com/heartmarshall/pidgin-backend/internal/transport/middleware"
)

// tokenValidator checks admin bearer tokens.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// RouterDeps groups everything NewRouter wires together. Admin and Tokens are
// nil when admin login is disabled.
type RouterDeps struct {
	Translate *TranslateHandler
	Health    *HealthHandler
	Admin     *AdminHandler
	Tokens    tokenValidator
	Limiter   *middleware.RateLimiter
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
}

// NewRouter builds the HTTP handler with the global middleware chain applied.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	api := d.Limiter.Limit("translate", d.RateLimit.TranslatePerMinute)
	mux.Handle("POST /api/translate", middleware.Handle(d.Translate.Translate, api))
	mux.Handle("POST /api/translate/paragraph", middleware.Handle(d.Translate.TranslateParagraph, api))
	mux.Handle("GET /api/suggestions", middleware.Handle(d.Translate.Suggestions, api))
	mux.Handle("GET /api/similarity", middleware.Handle(d.Translate.Similarity, api))
	mux.Handle("GET /api/phrases", middleware.Handle(d.Translate.Phrases, api))
	mux.Handle("GET /api/phrases/random", middleware.Handle(d.Translate.RandomPhrase, api))

	if d.Admin != nil && d.Tokens != nil {
		adminLimit := d.Limiter.Limit("admin", d.RateLimit.AdminPerMinute)
		mux.Handle("POST /admin/login", middleware.Handle(d.Admin.Login, adminLimit))
		mux.Handle("POST /admin/reload", middleware.Handle(d.Admin.Reload, adminLimit, middleware.AdminAuth(d.Tokens)))
	}

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)(mux)
}
