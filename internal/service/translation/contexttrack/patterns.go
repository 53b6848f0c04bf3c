package contexttrack

import (
	"regexp"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// Patterns run against the lowercased sentence and match anywhere, including
// inside longer words ("homework" mentions "home", "this" reads as present).

var entityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`my (uncle|aunt|grandmother|grandfather|tutu|braddah|sistah|friend|boss|family|ohana)`),
	regexp.MustCompile(`(beach|work|home|school|restaurant|food truck)`),
	regexp.MustCompile(`(?i)the (h1|highway|island|city)`),
}

// Checked in order; the first matching tense wins.
var tensePatterns = []struct {
	tense domain.Tense
	re    *regexp.Regexp
}{
	{domain.TensePast, regexp.MustCompile(`yesterday|last week|was|were|went|had|did|wen `)},
	{domain.TenseFuture, regexp.MustCompile(`tomorrow|will|going to|gonna|next`)},
	{domain.TensePresent, regexp.MustCompile(`today|now|currently|am|is|are|stay`)},
}

var subjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(my uncle|my aunt|my grandmother|my tutu|my braddah|my friend|my boss)`),
	regexp.MustCompile(`^(he|she|they|we|i)`),
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(beach|ocean|shore|surf)`),
	regexp.MustCompile(`(?i)(home|house)`),
	regexp.MustCompile(`(?i)(work|office)`),
	regexp.MustCompile(`(?i)(restaurant|food truck)`),
	regexp.MustCompile(`(?i)(big island|oahu|maui|kauai)`),
}

// Every keyword present in the sentence is applied in list order, so the last
// one in this list wins.
var timeKeywords = []struct {
	keyword string
	tense   domain.Tense
}{
	{"yesterday", domain.TensePast},
	{"last week", domain.TensePast},
	{"last weekend", domain.TensePast},
	{"today", domain.TensePresent},
	{"now", domain.TensePresent},
	{"tomorrow", domain.TenseFuture},
	{"next week", domain.TenseFuture},
	{"later", domain.TenseFuture},
	{"latahs", domain.TenseFuture},
	{"bumbai", domain.TenseFuture},
}

// Leading pronouns replaced by the last known subject, tried in this order.
var pronounPrefixes = []string{"he ", "she ", "He ", "She "}
