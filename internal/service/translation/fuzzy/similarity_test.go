package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"howzit", "howzit", 0},
		{"brah", "bruh", 1},
		{"ab", "ba", 2}, // no transposition discount
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestSimilarity_Identity(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "a", "howzit", "broke da mouth", "ʻono"} {
		assert.Equal(t, 1.0, Similarity(s, s), "Similarity(%q, %q)", s, s)
	}
}

func TestSimilarity_EmptyEdges(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 0.0, Similarity("", "abc"))
}

func TestSimilarity_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"howzit", "howzet"},
		{"da kine", "dakine"},
		{"pau hana", "pau"},
		{"", "x"},
		{"grindz", "grinds"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %q", p)
	}
}

func TestSimilarity_Value(t *testing.T) {
	t.Parallel()

	// one substitution over 10 runes
	assert.InDelta(t, 0.9, Similarity("shaka brah", "shaka bruh"), 1e-9)
	assert.InDelta(t, 0.5, Similarity("abcd", "ab"), 1e-9)
}

func TestBest(t *testing.T) {
	t.Parallel()

	candidates := []string{"howzit", "how you stay", "shaka"}

	match, score, ok := Best("howzet", candidates, 0.7)
	assert.True(t, ok)
	assert.Equal(t, "howzit", match)
	assert.InDelta(t, 5.0/6.0, score, 1e-9)

	_, _, ok = Best("zzz", candidates, 0.7)
	assert.False(t, ok)
}

func TestBest_ThresholdIsStrict(t *testing.T) {
	t.Parallel()

	// "abcdefghij" vs "abcdefgxyz": 3 edits over 10 runes = 0.7 exactly.
	_, _, ok := Best("abcdefghij", []string{"abcdefgxyz"}, 0.7)
	assert.False(t, ok)
}
