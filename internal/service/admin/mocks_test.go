package admin

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/auth"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateTokenFunc func(subject, role string) (string, time.Time, error)
	ValidateTokenFunc func(token string) (auth.Claims, error)

	mu            sync.Mutex
	generateCalls []struct{ Subject, Role string }
}

func (m *jwtManagerMock) GenerateToken(subject, role string) (string, time.Time, error) {
	if m.GenerateTokenFunc == nil {
		panic("jwtManagerMock.GenerateTokenFunc: method is nil but jwtManager.GenerateToken was just called")
	}
	m.mu.Lock()
	m.generateCalls = append(m.generateCalls, struct{ Subject, Role string }{subject, role})
	m.mu.Unlock()
	return m.GenerateTokenFunc(subject, role)
}

func (m *jwtManagerMock) GenerateTokenCalls() []struct{ Subject, Role string } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

func (m *jwtManagerMock) ValidateToken(token string) (auth.Claims, error) {
	if m.ValidateTokenFunc == nil {
		panic("jwtManagerMock.ValidateTokenFunc: method is nil but jwtManager.ValidateToken was just called")
	}
	return m.ValidateTokenFunc(token)
}

var _ reloader = &reloaderMock{}

type reloaderMock struct {
	ReloadFunc func(ctx context.Context) (phraseindex.Stats, error)
}

func (m *reloaderMock) Reload(ctx context.Context) (phraseindex.Stats, error) {
	if m.ReloadFunc == nil {
		panic("reloaderMock.ReloadFunc: method is nil but reloader.Reload was just called")
	}
	return m.ReloadFunc(ctx)
}
