package translation

import (
	"strings"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/fuzzy"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

const maxAlternatives = 2

// TranslateEnglishToPidgin runs the English cascade: exact, then partial
// window, then contained key. A nil result means no match (or no index).
func (s *Service) TranslateEnglishToPidgin(text string) *domain.TranslationResult {
	e := s.engine.Load()
	if e == nil {
		return nil
	}
	return matchEnglish(e.index, text)
}

// TranslatePidginToEnglish runs the Pidgin cascade: exact reverse match, then
// the closest known Pidgin form above the fuzzy threshold.
func (s *Service) TranslatePidginToEnglish(text string) *domain.TranslationResult {
	e := s.engine.Load()
	if e == nil {
		return nil
	}
	return matchPidgin(e.index, text, s.opts.FuzzyThreshold)
}

func matchEnglish(idx *phraseindex.Index, text string) *domain.TranslationResult {
	normalized := domain.NormalizeKey(text)
	if normalized == "" {
		return nil
	}

	if bucket := idx.LookupExact(normalized); len(bucket) > 0 {
		res := fromOption(bucket[0], domain.ConfidenceExact, domain.SourceExactMatch)
		for _, alt := range bucket[1:min(len(bucket), 1+maxAlternatives)] {
			res.Alternatives = append(res.Alternatives, alt.Pidgin)
		}
		return res
	}

	// Every window of at least two words, by start then end position.
	words := strings.Fields(normalized)
	for i := 0; i < len(words); i++ {
		for j := i + 2; j <= len(words); j++ {
			window := strings.Join(words[i:j], " ")
			if bucket := idx.LookupExact(window); len(bucket) > 0 {
				res := fromOption(bucket[0], domain.ConfidencePartial, domain.SourcePartialMatch)
				res.MatchedPhrase = window
				return res
			}
		}
	}

	for _, key := range idx.KeysByLength() {
		if !strings.Contains(normalized, key) {
			continue
		}
		bucket := idx.LookupExact(key)
		res := fromOption(bucket[0], domain.ConfidenceContained, domain.SourceContainedMatch)
		res.MatchedPhrase = key
		return res
	}

	return nil
}

func matchPidgin(idx *phraseindex.Index, text string, threshold float64) *domain.TranslationResult {
	normalized := domain.NormalizeKey(text)
	if normalized == "" {
		return nil
	}

	if key, opt, ok := idx.LookupPidgin(normalized); ok {
		return reverseResult(key, opt, domain.ConfidenceExact, domain.SourceExactMatch)
	}

	form, score, ok := fuzzy.Best(normalized, idx.PidginForms(), threshold)
	if !ok {
		return nil
	}
	key, opt, _ := idx.LookupPidgin(form)
	res := reverseResult(key, opt, score, domain.SourceFuzzyMatch)
	res.MatchedAgainst = opt.Pidgin
	return res
}

func fromOption(opt domain.PhraseOption, confidence float64, src domain.MatchSource) *domain.TranslationResult {
	return &domain.TranslationResult{
		Translation: opt.Pidgin,
		Confidence:  confidence,
		Source:      src,
		Category:    opt.Category,
		Difficulty:  opt.Difficulty,
	}
}

// reverseResult answers with the normalized English key.
func reverseResult(key string, opt domain.PhraseOption, confidence float64, src domain.MatchSource) *domain.TranslationResult {
	return &domain.TranslationResult{
		Translation: key,
		Confidence:  confidence,
		Source:      src,
		Category:    opt.Category,
		Difficulty:  opt.Difficulty,
	}
}
