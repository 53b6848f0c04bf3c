package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pidgin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pidgin-backend/internal/adapter/postgres/phrase"
	"github.com/heartmarshall/pidgin-backend/internal/adapter/provider/cache"
	"github.com/heartmarshall/pidgin-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/pidgin-backend/internal/adapter/provider/remote"
	"github.com/heartmarshall/pidgin-backend/internal/adapter/source/jsonexport"
	"github.com/heartmarshall/pidgin-backend/internal/config"
	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// phraseSource matches translation's data source dependency.
type phraseSource interface {
	LoadPhrases(ctx context.Context) ([]domain.PhraseRecord, error)
}

// remoteTranslator matches translation's remote dependency.
type remoteTranslator interface {
	Translate(ctx context.Context, text string, dir domain.Direction) (string, error)
}

// newPhraseSource selects the phrase data source. db is only used for the
// postgres source and must be non-nil then.
func newPhraseSource(cfg config.TranslatorConfig, db postgres.DB, logger *slog.Logger) (phraseSource, error) {
	switch cfg.Source {
	case config.SourceFile:
		return jsonexport.NewFileLoader(cfg.FilePath, logger), nil
	case config.SourceURL:
		return jsonexport.NewURLLoader(cfg.URL, cfg.FetchTimeout, logger), nil
	case config.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("phrase source postgres: no database")
		}
		return phrase.New(db), nil
	default:
		return nil, fmt.Errorf("unknown phrase source %q", cfg.Source)
	}
}

// newRemoteTranslator builds the configured remote translator wrapped in an
// LRU cache. It returns a nil interface when no provider is configured.
func newRemoteTranslator(cfg config.RemoteConfig, logger *slog.Logger) (remoteTranslator, error) {
	var next remoteTranslator
	switch cfg.Provider {
	case "", config.ProviderNone:
		return nil, nil
	case config.ProviderAnthropic:
		next = llm.NewTranslator(llm.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			BaseURL:   cfg.BaseURL,
			Timeout:   cfg.Timeout,
		}, logger)
	case config.ProviderHTTP:
		next = remote.NewProvider(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger)
	default:
		return nil, fmt.Errorf("unknown remote provider %q", cfg.Provider)
	}

	cached, err := cache.NewTranslator(next, cfg.CacheSize, logger)
	if err != nil {
		return nil, fmt.Errorf("remote cache: %w", err)
	}
	return cached, nil
}
