// Package admin authenticates the single configured administrator and runs
// the operations reserved for it.
package admin

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/auth"
	"github.com/heartmarshall/pidgin-backend/internal/config"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

// jwtManager defines the token operations needed by the admin service.
type jwtManager interface {
	GenerateToken(subject, role string) (string, time.Time, error)
	ValidateToken(token string) (auth.Claims, error)
}

// reloader rebuilds the phrase index from its data source.
type reloader interface {
	Reload(ctx context.Context) (phraseindex.Stats, error)
}

// Service implements admin login, token validation and index reload.
type Service struct {
	log      *slog.Logger
	jwt      jwtManager
	reloader reloader
	cfg      config.AdminConfig
	now      func() time.Time

	mu        sync.Mutex
	attempts  map[string]*attempts
	lastSweep time.Time
}

// attempts tracks failed logins from one client.
type attempts struct {
	failures    int
	lastFailure time.Time
	lockedUntil time.Time
}

// NewService creates a new admin service instance.
func NewService(
	logger *slog.Logger,
	jwt jwtManager,
	reloader reloader,
	cfg config.AdminConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "admin"),
		jwt:      jwt,
		reloader: reloader,
		cfg:      cfg,
		now:      time.Now,
		attempts: make(map[string]*attempts),
	}
}
