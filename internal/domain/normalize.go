package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeKey prepares a phrase for index storage and lookup:
// leading/trailing whitespace is trimmed and the text is lowercased.
// Inner whitespace and punctuation are kept as-is, so "how are you?"
// and "how are you" are different keys.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CapitalizeFirst upper-cases the first rune of s.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
