// Package contexttrack translates multi-sentence text one sentence at a time
// while carrying narrative state (subject, tense, entities, places) from each
// sentence to the next.
package contexttrack

import (
	"strings"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// MaxHistory bounds the sentence history kept by a Tracker.
const MaxHistory = 5

// SentenceTranslator translates one sentence. A nil result means it produced
// nothing for that sentence.
type SentenceTranslator interface {
	TranslateSentence(sentence string, dir domain.Direction) *domain.TranslationResult
}

// ConversationContext is the state accumulated across a paragraph.
type ConversationContext struct {
	Entities     []string
	CurrentTense domain.Tense
	LastSubject  string
	LastObject   string
	Locations    []string
	TimeContext  domain.Tense
}

// HistoryEntry records one translated sentence.
type HistoryEntry struct {
	Original   string
	Translated string
	Direction  domain.Direction
}

// Tracker is single-use state for one paragraph call. It is not safe for
// concurrent use; create one per request.
type Tracker struct {
	translator SentenceTranslator
	ctx        ConversationContext
	history    []HistoryEntry
}

// NewTracker creates a Tracker that delegates sentence translation to tr.
func NewTracker(tr SentenceTranslator) *Tracker {
	return &Tracker{translator: tr}
}

// Reset clears all accumulated context and history.
func (t *Tracker) Reset() {
	t.ctx = ConversationContext{}
	t.history = nil
}

// Context returns a copy of the current context.
func (t *Tracker) Context() ConversationContext {
	c := t.ctx
	c.Entities = append([]string(nil), t.ctx.Entities...)
	c.Locations = append([]string(nil), t.ctx.Locations...)
	return c
}

// History returns a copy of the sentence history, oldest first.
func (t *Tracker) History() []HistoryEntry {
	return append([]HistoryEntry(nil), t.history...)
}

// TranslateParagraph resets the tracker, splits text into sentences and
// translates them in order, feeding each sentence's context into the next.
// It returns nil when text holds no sentences.
func (t *Tracker) TranslateParagraph(text string, dir domain.Direction) *domain.ParagraphResult {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	t.Reset()

	results := make([]domain.SentenceResult, 0, len(sentences))
	pieces := make([]string, 0, len(sentences))
	var total float64

	for i, sentence := range sentences {
		res := t.translateWithContext(sentence, dir, i)
		results = append(results, res)
		pieces = append(pieces, res.Translation)
		total += res.Confidence

		t.update(sentence, res.Translation, dir)
	}

	return &domain.ParagraphResult{
		Translation:   strings.Join(pieces, " "),
		Confidence:    total / float64(len(results)),
		SentenceCount: len(sentences),
		Sentences:     results,
		ContextUsed:   t.Summary(),
	}
}

func (t *Tracker) translateWithContext(sentence string, dir domain.Direction, index int) domain.SentenceResult {
	processed := sentence
	if dir == domain.DirectionEngToPidgin {
		processed = t.resolvePronouns(sentence)
	}

	out := domain.SentenceResult{
		Index:          index,
		Input:          sentence,
		ContextApplied: len(t.ctx.Entities) > 0,
	}
	if processed != sentence {
		out.Resolved = processed
	}

	if res := t.translator.TranslateSentence(processed, dir); res != nil {
		out.TranslationResult = *res
		return out
	}

	out.TranslationResult = domain.TranslationResult{
		Translation: processed,
		Confidence:  domain.ConfidenceContextFill,
		Source:      domain.SourceContextFallback,
	}
	return out
}

// resolvePronouns swaps a leading he/she for the last known subject.
func (t *Tracker) resolvePronouns(sentence string) string {
	if t.ctx.LastSubject == "" {
		return sentence
	}
	out := sentence
	for _, p := range pronounPrefixes {
		if strings.HasPrefix(out, p) {
			out = t.ctx.LastSubject + " " + out[len(p):]
		}
	}
	return out
}

// update folds the original (pre-rewrite) sentence into the context.
func (t *Tracker) update(original, translated string, dir domain.Direction) {
	t.history = append(t.history, HistoryEntry{Original: original, Translated: translated, Direction: dir})
	if len(t.history) > MaxHistory {
		t.history = t.history[len(t.history)-MaxHistory:]
	}

	s := strings.ToLower(original)
	t.extractEntities(s)
	t.detectTense(s)
	t.trackSubject(s)
	t.trackLocations(s)
	t.trackTime(s)
}

func (t *Tracker) extractEntities(s string) {
	for _, re := range entityPatterns {
		for _, m := range re.FindAllString(s, -1) {
			t.ctx.Entities = appendUnique(t.ctx.Entities, m)
		}
	}
}

func (t *Tracker) detectTense(s string) {
	for _, p := range tensePatterns {
		if p.re.MatchString(s) {
			t.ctx.CurrentTense = p.tense
			return
		}
	}
}

func (t *Tracker) trackSubject(s string) {
	for _, re := range subjectPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			t.ctx.LastSubject = m[1]
			return
		}
	}
}

func (t *Tracker) trackLocations(s string) {
	for _, re := range locationPatterns {
		for _, m := range re.FindAllString(s, -1) {
			t.ctx.Locations = appendUnique(t.ctx.Locations, strings.ToLower(m))
		}
	}
}

func (t *Tracker) trackTime(s string) {
	for _, k := range timeKeywords {
		if strings.Contains(s, k.keyword) {
			t.ctx.TimeContext = k.tense
		}
	}
}

// Summary reports the counts and tense state collected so far.
func (t *Tracker) Summary() domain.ContextSummary {
	return domain.ContextSummary{
		EntitiesTracked:    len(t.ctx.Entities),
		Tense:              t.ctx.CurrentTense,
		LocationsTracked:   len(t.ctx.Locations),
		TimeContext:        t.ctx.TimeContext,
		SentencesInHistory: len(t.history),
		LastSubject:        t.ctx.LastSubject,
	}
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
