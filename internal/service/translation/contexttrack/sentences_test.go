package contexttrack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"three sentences", "Hi there.  How you? Good!", []string{"Hi there.", "How you?", "Good!"}},
		{"no terminator", "No terminator here", []string{"No terminator here"}},
		{"trailing terminator", "One sentence.", []string{"One sentence."}},
		{"decimal stays whole", "It cost 3.5 dollars. Cheap!", []string{"It cost 3.5 dollars.", "Cheap!"}},
		{"abbreviation splits", "Mr. Kealoha came.", []string{"Mr.", "Kealoha came."}},
		{"newline counts as whitespace", "Eh!\nHowzit?", []string{"Eh!", "Howzit?"}},
		{"empty", "", nil},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestIsParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"two sentences", "Hello. Bye.", true},
		{"one sentence", "Hello there.", false},
		{"stacked terminators", "What?!", true},
		{"29 words", strings.Repeat("word ", 29), false},
		{"30 words", strings.Repeat("word ", 30), true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsParagraph(tt.in))
		})
	}
}
