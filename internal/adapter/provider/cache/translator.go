// Package cache memoizes remote translations in a bounded LRU.
package cache

import (
	"context"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// DefaultSize is used when the configured size is not positive.
const DefaultSize = 1000

type translator interface {
	Translate(ctx context.Context, text string, dir domain.Direction) (string, error)
}

// Translator wraps another translator and caches successful, non-empty
// results keyed by direction and trimmed text. Failures are never cached.
type Translator struct {
	next  translator
	cache *lru.Cache[string, string]
	log   *slog.Logger
}

// NewTranslator wraps next with an LRU of the given size.
func NewTranslator(next translator, size int, logger *slog.Logger) (*Translator, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Translator{
		next:  next,
		cache: c,
		log:   logger.With("adapter", "translation_cache"),
	}, nil
}

// Translate returns the cached translation or calls the wrapped translator.
func (t *Translator) Translate(ctx context.Context, text string, dir domain.Direction) (string, error) {
	key := cacheKey(text, dir)
	if out, ok := t.cache.Get(key); ok {
		t.log.DebugContext(ctx, "translation cache hit", slog.String("direction", dir.String()))
		return out, nil
	}

	out, err := t.next.Translate(ctx, text, dir)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) != "" {
		t.cache.Add(key, out)
	}
	return out, nil
}

func cacheKey(text string, dir domain.Direction) string {
	return dir.String() + "\x00" + strings.TrimSpace(text)
}
