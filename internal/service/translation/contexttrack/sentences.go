package contexttrack

import (
	"regexp"
	"strings"
)

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)
	terminator       = regexp.MustCompile(`[.!?]`)
)

// paragraphWords is the word count at which text counts as a paragraph
// regardless of punctuation.
const paragraphWords = 30

// SplitSentences splits text after every '.', '!' or '?' that is followed by
// whitespace. Terminators stay with their sentence; pieces are trimmed and
// empty ones dropped.
//
// The splitter does not know about abbreviations or decimals: "Mr. Kealoha"
// becomes two sentences, "3.5" stays whole only because no space follows the
// dot.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		out = appendTrimmed(out, text[start:loc[0]+1])
		start = loc[1]
	}
	return appendTrimmed(out, text[start:])
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

// IsParagraph reports whether text should go through paragraph translation:
// two or more sentence terminators anywhere, or at least 30 words.
func IsParagraph(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if len(terminator.FindAllStringIndex(text, 2)) >= 2 {
		return true
	}
	return len(strings.Fields(text)) >= paragraphWords
}
