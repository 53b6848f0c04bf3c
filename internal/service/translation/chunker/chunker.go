// Package chunker translates whole sentences by greedy longest-window
// segmentation over the phrase index.
//
// Segmentation is greedy and never backtracks: once a window matches, the
// cursor moves past it even if a shorter window would have allowed a better
// split later in the sentence.
package chunker

import (
	"strings"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

// DefaultMaxWindow is the longest phrase window tried, in words.
const DefaultMaxWindow = 5

const minWindow = 2

// Chunker is stateless apart from its read-only index and safe for
// concurrent use.
type Chunker struct {
	index     *phraseindex.Index
	maxWindow int
}

// New creates a Chunker over idx. A maxWindow below 2 selects DefaultMaxWindow.
func New(idx *phraseindex.Index, maxWindow int) *Chunker {
	if maxWindow < minWindow {
		maxWindow = DefaultMaxWindow
	}
	return &Chunker{index: idx, maxWindow: maxWindow}
}

// Translate returns an exact sentence match when the index has one and a
// chunked translation otherwise. It returns nil only for blank input.
func (c *Chunker) Translate(sentence string, dir domain.Direction) *domain.TranslationResult {
	if strings.TrimSpace(sentence) == "" {
		return nil
	}

	if res := c.exact(sentence, dir); res != nil {
		return res
	}
	return c.chunk(sentence, dir)
}

func (c *Chunker) exact(sentence string, dir domain.Direction) *domain.TranslationResult {
	if dir == domain.DirectionPidginToEng {
		key, opt, ok := c.index.LookupPidgin(sentence)
		if !ok {
			return nil
		}
		return &domain.TranslationResult{
			Translation: key,
			Confidence:  domain.ConfidenceExact,
			Source:      domain.SourceExactMatch,
			Category:    opt.Category,
			Difficulty:  opt.Difficulty,
		}
	}

	opt, ok := c.index.Canonical(sentence)
	if !ok {
		return nil
	}
	return &domain.TranslationResult{
		Translation: opt.Pidgin,
		Confidence:  domain.ConfidenceExact,
		Source:      domain.SourceExactMatch,
		Category:    opt.Category,
		Difficulty:  opt.Difficulty,
	}
}

func (c *Chunker) chunk(sentence string, dir domain.Direction) *domain.TranslationResult {
	words := strings.Fields(strings.ToLower(sentence))

	var (
		chunks  []domain.Chunk
		pieces  []string
		total   float64
		phrases int
		fills   int
	)

	for i := 0; i < len(words); {
		ch, ok := c.phraseAt(words, i, dir)
		if ok {
			phrases++
		} else {
			ch = c.word(words[i], dir)
			fills++
		}
		chunks = append(chunks, ch)
		pieces = append(pieces, ch.Target)
		total += ch.Confidence
		i += ch.Length
	}

	return &domain.TranslationResult{
		Translation:   domain.CapitalizeFirst(strings.Join(pieces, " ")),
		Confidence:    total / float64(len(chunks)),
		Source:        domain.SourceChunkFallback,
		Chunks:        chunks,
		PhraseMatches: phrases,
		WordFills:     fills,
	}
}

// phraseAt tries windows from maxWindow down to 2 starting at word i.
func (c *Chunker) phraseAt(words []string, i int, dir domain.Direction) (domain.Chunk, bool) {
	for size := min(c.maxWindow, len(words)-i); size >= minWindow; size-- {
		phrase := strings.Join(words[i:i+size], " ")
		target, ok := c.lookup(phrase, dir)
		if !ok {
			continue
		}
		return domain.Chunk{
			Kind:       domain.ChunkPhrase,
			Source:     phrase,
			Target:     target,
			Confidence: domain.ConfidenceChunkPhrase,
			Length:     size,
		}, true
	}
	return domain.Chunk{}, false
}

// word translates a single token: index first, then the rule table, then the
// token itself.
func (c *Chunker) word(w string, dir domain.Direction) domain.Chunk {
	target, ok := c.lookup(w, dir)
	if !ok {
		rules := engToPidginRules
		if dir == domain.DirectionPidginToEng {
			rules = pidginToEngRules
		}
		if r, found := rules[w]; found {
			target = r
		} else {
			target = w
		}
	}
	return domain.Chunk{
		Kind:       domain.ChunkWord,
		Source:     w,
		Target:     target,
		Confidence: domain.ConfidenceChunkWord,
		Length:     1,
	}
}

func (c *Chunker) lookup(text string, dir domain.Direction) (string, bool) {
	if dir == domain.DirectionPidginToEng {
		key, _, ok := c.index.LookupPidgin(text)
		return key, ok
	}
	opt, ok := c.index.Canonical(text)
	if !ok {
		return "", false
	}
	return opt.Pidgin, true
}
