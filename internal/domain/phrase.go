package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Defaults applied when a source record omits the optional fields.
const (
	DefaultCategory   = "general"
	DefaultDifficulty = "beginner"
)

// PhraseRecord is one dictionary/phrase entry: a Pidgin form and the English
// glosses it translates. The first gloss is the primary one.
// Records are immutable once loaded.
type PhraseRecord struct {
	ID         uuid.UUID
	Pidgin     string
	English    []string
	Category   string
	Difficulty string
}

// NewPhraseRecord builds a PhraseRecord from possibly incomplete source data.
// Optional fields get their defaults here so readers never re-check them.
// Blank glosses are dropped. The second return value is false when the record
// is malformed (no Pidgin form or no usable gloss) and must be skipped.
func NewPhraseRecord(pidgin string, english []string, category, difficulty *string) (PhraseRecord, bool) {
	pidgin = strings.TrimSpace(pidgin)
	if pidgin == "" {
		return PhraseRecord{}, false
	}

	glosses := make([]string, 0, len(english))
	for _, g := range english {
		if strings.TrimSpace(g) == "" {
			continue
		}
		glosses = append(glosses, g)
	}
	if len(glosses) == 0 {
		return PhraseRecord{}, false
	}

	rec := PhraseRecord{
		Pidgin:     pidgin,
		English:    glosses,
		Category:   DefaultCategory,
		Difficulty: DefaultDifficulty,
	}
	if category != nil && strings.TrimSpace(*category) != "" {
		rec.Category = strings.TrimSpace(*category)
	}
	if difficulty != nil && strings.TrimSpace(*difficulty) != "" {
		rec.Difficulty = strings.TrimSpace(*difficulty)
	}
	return rec, true
}

// PhraseOption is one candidate translation stored in an index bucket.
type PhraseOption struct {
	Pidgin     string
	English    string
	Category   string
	Difficulty string
}

// Phrase is a flattened (english, pidgin) pair returned by browsing operations.
type Phrase struct {
	English    string `json:"english"`
	Pidgin     string `json:"pidgin"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// Suggestion is an autocomplete candidate.
type Suggestion struct {
	Text     string `json:"text"`
	Pidgin   string `json:"pidgin"`
	Category string `json:"category"`
}
