// Package phraseindex maps normalized English phrases to candidate Pidgin
// translations. An Index is built once from a record export and is read-only
// afterwards; reloading means building a new Index.
package phraseindex

import (
	"math/rand/v2"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// Index is an immutable English→Pidgin phrase index with a reverse view.
// It is safe for concurrent readers.
type Index struct {
	buckets map[string][]domain.PhraseOption
	keys    []string // insertion order
	byLen   []string // keys, stable-sorted by descending character count

	reverse map[string]string // normalized pidgin -> english key
	pidgins []string          // distinct normalized pidgin forms, first-seen order

	records int
	skipped int
}

// Build creates an Index from records. For every gloss of every record the
// normalized gloss gets the record appended to its bucket, in input order.
// Malformed records are skipped and counted, never reported as errors.
func Build(records []domain.PhraseRecord) *Index {
	idx := &Index{
		buckets: make(map[string][]domain.PhraseOption),
		reverse: make(map[string]string),
	}

	for _, rec := range records {
		if strings.TrimSpace(rec.Pidgin) == "" || len(rec.English) == 0 {
			idx.skipped++
			continue
		}

		added := false
		for _, eng := range rec.English {
			key := domain.NormalizeKey(eng)
			if key == "" {
				continue
			}
			if _, ok := idx.buckets[key]; !ok {
				idx.keys = append(idx.keys, key)
			}
			idx.buckets[key] = append(idx.buckets[key], domain.PhraseOption{
				Pidgin:     rec.Pidgin,
				English:    eng,
				Category:   rec.Category,
				Difficulty: rec.Difficulty,
			})
			added = true
		}
		if !added {
			idx.skipped++
			continue
		}
		idx.records++
	}

	idx.byLen = make([]string, len(idx.keys))
	copy(idx.byLen, idx.keys)
	sort.SliceStable(idx.byLen, func(i, j int) bool {
		return utf8.RuneCountInString(idx.byLen[i]) > utf8.RuneCountInString(idx.byLen[j])
	})

	// Reverse view follows key order, then bucket order, so a Pidgin form
	// resolves to the first English key that lists it.
	for _, key := range idx.keys {
		for _, opt := range idx.buckets[key] {
			p := domain.NormalizeKey(opt.Pidgin)
			if _, ok := idx.reverse[p]; ok {
				continue
			}
			idx.reverse[p] = key
			idx.pidgins = append(idx.pidgins, p)
		}
	}

	return idx
}

// LookupExact returns the bucket for the normalized phrase, or nil.
func (x *Index) LookupExact(phrase string) []domain.PhraseOption {
	return x.buckets[domain.NormalizeKey(phrase)]
}

// Canonical returns the first (highest-confidence) option for phrase.
func (x *Index) Canonical(phrase string) (domain.PhraseOption, bool) {
	bucket := x.LookupExact(phrase)
	if len(bucket) == 0 {
		return domain.PhraseOption{}, false
	}
	return bucket[0], true
}

// LookupPidgin resolves a Pidgin surface form to its English key and the
// option that matched.
func (x *Index) LookupPidgin(text string) (string, domain.PhraseOption, bool) {
	p := domain.NormalizeKey(text)
	key, ok := x.reverse[p]
	if !ok {
		return "", domain.PhraseOption{}, false
	}
	for _, opt := range x.buckets[key] {
		if domain.NormalizeKey(opt.Pidgin) == p {
			return key, opt, true
		}
	}
	return "", domain.PhraseOption{}, false
}

// Each visits every (english key, option) pair in key order then bucket
// order. Returning false stops the walk.
func (x *Index) Each(fn func(key string, opt domain.PhraseOption) bool) {
	for _, key := range x.keys {
		for _, opt := range x.buckets[key] {
			if !fn(key, opt) {
				return
			}
		}
	}
}

// Keys returns the English keys in insertion order. The slice must not be modified.
func (x *Index) Keys() []string { return x.keys }

// KeysByLength returns the English keys sorted longest first. Keys of equal
// length keep insertion order. The slice must not be modified.
func (x *Index) KeysByLength() []string { return x.byLen }

// PidginForms returns the distinct normalized Pidgin forms. The slice must not be modified.
func (x *Index) PidginForms() []string { return x.pidgins }

// Stats summarizes the index contents.
type Stats struct {
	Records     int `json:"records"`
	Skipped     int `json:"skipped"`
	Keys        int `json:"keys"`
	PidginForms int `json:"pidginForms"`
}

// Stats returns counts collected during Build.
func (x *Index) Stats() Stats {
	return Stats{
		Records:     x.records,
		Skipped:     x.skipped,
		Keys:        len(x.keys),
		PidginForms: len(x.pidgins),
	}
}

// ByCategory returns up to limit phrases whose category matches exactly.
func (x *Index) ByCategory(category string, limit int) []domain.Phrase {
	var out []domain.Phrase
	if limit <= 0 {
		return out
	}
	x.Each(func(key string, opt domain.PhraseOption) bool {
		if opt.Category != category {
			return true
		}
		out = append(out, toPhrase(key, opt))
		return len(out) < limit
	})
	return out
}

// Random picks one phrase uniformly, optionally restricted to a difficulty.
// An empty difficulty matches everything.
func (x *Index) Random(difficulty string, rnd *rand.Rand) (domain.Phrase, bool) {
	var pool []domain.Phrase
	x.Each(func(key string, opt domain.PhraseOption) bool {
		if difficulty == "" || opt.Difficulty == difficulty {
			pool = append(pool, toPhrase(key, opt))
		}
		return true
	})
	if len(pool) == 0 {
		return domain.Phrase{}, false
	}

	var i int
	if rnd != nil {
		i = rnd.IntN(len(pool))
	} else {
		i = rand.IntN(len(pool))
	}
	return pool[i], true
}

func toPhrase(key string, opt domain.PhraseOption) domain.Phrase {
	return domain.Phrase{
		English:    key,
		Pidgin:     opt.Pidgin,
		Category:   opt.Category,
		Difficulty: opt.Difficulty,
	}
}
