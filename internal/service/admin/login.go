package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/pidgin-backend/internal/auth"
	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

const defaultFailureWindow = 15 * time.Minute

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
}

// Login checks the admin credentials and issues a token.
//
// Returns ErrForbidden when no admin is configured, ErrLocked while the
// client is locked out and ErrUnauthorized for wrong credentials. After
// MaxFailedAttempts consecutive failures the client is locked out for
// LockoutDuration.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if !s.cfg.Enabled() {
		return nil, domain.ErrForbidden
	}

	if until, locked := s.lockedUntil(input.ClientKey); locked {
		s.log.WarnContext(ctx, "admin login while locked out",
			slog.String("client", input.ClientKey),
			slog.Time("locked_until", until))
		return nil, domain.ErrLocked
	}

	// The hash comparison runs even for a wrong username so both cases cost the same.
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(input.Password))
	if !userOK || passErr != nil {
		if s.recordFailure(input.ClientKey) {
			s.log.WarnContext(ctx, "admin locked out",
				slog.String("client", input.ClientKey),
				slog.Duration("for", s.cfg.LockoutDuration))
		}
		return nil, domain.ErrUnauthorized
	}

	s.resetFailures(input.ClientKey)

	token, expires, err := s.jwt.GenerateToken(s.cfg.Username, auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("admin.Login generate token: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in", slog.String("client", input.ClientKey))

	return &LoginResult{
		Token:     token,
		ExpiresAt: expires,
		Username:  s.cfg.Username,
	}, nil
}

// ValidateToken returns the admin subject of a valid admin token.
func (s *Service) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Role != auth.RoleAdmin || claims.Subject != s.cfg.Username {
		return "", domain.ErrForbidden
	}
	return claims.Subject, nil
}

func (s *Service) lockedUntil(client string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[client]
	if !ok || a.lockedUntil.IsZero() {
		return time.Time{}, false
	}
	if s.now().Before(a.lockedUntil) {
		return a.lockedUntil, true
	}
	delete(s.attempts, client)
	return time.Time{}, false
}

// recordFailure counts a failed login and reports whether it started a lockout.
// Failures older than the lockout duration no longer count.
func (s *Service) recordFailure(client string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	a, ok := s.attempts[client]
	if !ok || now.Sub(a.lastFailure) >= s.failureWindow() {
		a = &attempts{}
		s.attempts[client] = a
	}
	a.lastFailure = now
	a.failures++
	if s.cfg.MaxFailedAttempts > 0 && a.failures >= s.cfg.MaxFailedAttempts {
		a.failures = 0
		a.lockedUntil = now.Add(s.cfg.LockoutDuration)
		return true
	}
	return false
}

func (s *Service) resetFailures(client string) {
	s.mu.Lock()
	delete(s.attempts, client)
	s.mu.Unlock()
}

// sweepLocked drops clients whose lockout has expired or whose last failure
// is outside the failure window. It runs at most once per window.
// Callers must hold s.mu.
func (s *Service) sweepLocked(now time.Time) {
	window := s.failureWindow()
	if now.Sub(s.lastSweep) < window {
		return
	}
	s.lastSweep = now

	for client, a := range s.attempts {
		if !a.lockedUntil.IsZero() {
			if !now.Before(a.lockedUntil) {
				delete(s.attempts, client)
			}
			continue
		}
		if now.Sub(a.lastFailure) >= window {
			delete(s.attempts, client)
		}
	}
}

func (s *Service) failureWindow() time.Duration {
	if s.cfg.LockoutDuration > 0 {
		return s.cfg.LockoutDuration
	}
	return defaultFailureWindow
}
