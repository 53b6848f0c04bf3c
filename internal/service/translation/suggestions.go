package translation

import (
	"sort"
	"strings"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/fuzzy"
)

const minSuggestionPrefix = 2

// GetSuggestions returns English phrases starting with partial, closest first.
// Inputs shorter than two characters yield nothing. limit <= 0 selects the
// configured default.
func (s *Service) GetSuggestions(partial string, limit int) []domain.Suggestion {
	out := []domain.Suggestion{}

	e := s.engine.Load()
	if e == nil {
		return out
	}
	prefix := domain.NormalizeKey(partial)
	if len([]rune(prefix)) < minSuggestionPrefix {
		return out
	}
	if limit <= 0 {
		limit = s.opts.SuggestionLimit
	}

	type scored struct {
		s   domain.Suggestion
		sim float64
	}
	var matches []scored
	for _, key := range e.index.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		opt, _ := e.index.Canonical(key)
		matches = append(matches, scored{
			s:   domain.Suggestion{Text: key, Pidgin: opt.Pidgin, Category: opt.Category},
			sim: fuzzy.Similarity(prefix, key),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].sim > matches[j].sim
	})

	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.s)
	}
	return out
}

// PhrasesByCategory lists up to limit phrases in category.
func (s *Service) PhrasesByCategory(category string, limit int) ([]domain.Phrase, error) {
	e := s.engine.Load()
	if e == nil {
		return nil, domain.ErrIndexNotLoaded
	}
	if strings.TrimSpace(category) == "" {
		return nil, domain.NewValidationError("category", "required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	out := e.index.ByCategory(strings.TrimSpace(category), limit)
	if out == nil {
		out = []domain.Phrase{}
	}
	return out, nil
}

// RandomPhrase picks a phrase at random, optionally of one difficulty.
func (s *Service) RandomPhrase(difficulty string) (domain.Phrase, error) {
	e := s.engine.Load()
	if e == nil {
		return domain.Phrase{}, domain.ErrIndexNotLoaded
	}
	p, ok := e.index.Random(strings.TrimSpace(difficulty), nil)
	if !ok {
		return domain.Phrase{}, domain.ErrNotFound
	}
	return p, nil
}
