// Package translation is the Pidgin/English translation engine: the phrase
// matching cascade, sentence chunking, context-aware paragraph translation and
// an optional remote translator in front of them.
package translation

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/chunker"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/fuzzy"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

type phraseSource interface {
	LoadPhrases(ctx context.Context) ([]domain.PhraseRecord, error)
}

type remoteTranslator interface {
	Translate(ctx context.Context, text string, dir domain.Direction) (string, error)
}

// Options tunes the local engine. Zero values select the defaults.
type Options struct {
	ChunkWindow     int
	FuzzyThreshold  float64
	SuggestionLimit int
	MaxTextLength   int
}

const (
	defaultSuggestionLimit = 5
	defaultMaxTextLength   = 5000
)

func (o Options) withDefaults() Options {
	if o.ChunkWindow < 2 {
		o.ChunkWindow = chunker.DefaultMaxWindow
	}
	if o.FuzzyThreshold <= 0 || o.FuzzyThreshold >= 1 {
		o.FuzzyThreshold = domain.ConfidenceFuzzyMin
	}
	if o.SuggestionLimit <= 0 {
		o.SuggestionLimit = defaultSuggestionLimit
	}
	if o.MaxTextLength <= 0 {
		o.MaxTextLength = defaultMaxTextLength
	}
	return o
}

// engine is one loaded index and the chunker bound to it. It is replaced
// wholesale on reload and never mutated.
type engine struct {
	index   *phraseindex.Index
	chunker *chunker.Chunker
}

// Service is safe for concurrent use. Every call reads one engine snapshot.
type Service struct {
	log    *slog.Logger
	source phraseSource
	remote remoteTranslator
	opts   Options

	engine atomic.Pointer[engine]
}

// NewService creates a translation service. remote may be nil when no remote
// translator is configured. The index stays empty until Reload succeeds.
func NewService(
	logger *slog.Logger,
	source phraseSource,
	remote remoteTranslator,
	opts Options,
) *Service {
	return &Service{
		log:    logger.With("service", "translation"),
		source: source,
		remote: remote,
		opts:   opts.withDefaults(),
	}
}

// Reload loads all records from the data source, builds a new index and swaps
// it in. On failure the previous index stays active.
func (s *Service) Reload(ctx context.Context) (phraseindex.Stats, error) {
	records, err := s.source.LoadPhrases(ctx)
	if err != nil {
		return phraseindex.Stats{}, fmt.Errorf("load phrases: %w", err)
	}

	idx := phraseindex.Build(records)
	stats := idx.Stats()
	if stats.Records == 0 {
		return stats, fmt.Errorf("build index: %w", domain.ErrEmptyDataSource)
	}

	s.engine.Store(&engine{
		index:   idx,
		chunker: chunker.New(idx, s.opts.ChunkWindow),
	})

	s.log.InfoContext(ctx, "phrase index loaded",
		slog.Int("records", stats.Records),
		slog.Int("skipped", stats.Skipped),
		slog.Int("keys", stats.Keys),
		slog.Int("pidgin_forms", stats.PidginForms),
	)
	return stats, nil
}

// Loaded reports whether an index is active.
func (s *Service) Loaded() bool {
	return s.engine.Load() != nil
}

// Stats returns the active index statistics.
func (s *Service) Stats() (phraseindex.Stats, error) {
	e := s.engine.Load()
	if e == nil {
		return phraseindex.Stats{}, domain.ErrIndexNotLoaded
	}
	return e.index.Stats(), nil
}

// RemoteEnabled reports whether a remote translator is configured.
func (s *Service) RemoteEnabled() bool {
	return s.remote != nil
}

// CalculateSimilarity returns the normalized edit-distance similarity of a and b.
func (s *Service) CalculateSimilarity(a, b string) float64 {
	return fuzzy.Similarity(a, b)
}
