package domain

// Confidence levels assigned by the matching cascade.
const (
	ConfidenceExact     = 0.95
	ConfidencePartial   = 0.85
	ConfidenceContained = 0.75
	ConfidenceFuzzyMin  = 0.7

	ConfidenceChunkPhrase = 0.9
	ConfidenceChunkWord   = 0.7
	ConfidenceContextFill = 0.5

	ConfidenceRemote = 0.9
)

// TranslationResult is produced fresh per call and never mutated afterwards.
type TranslationResult struct {
	Translation    string           `json:"translation"`
	Confidence     float64          `json:"confidence"`
	Source         MatchSource      `json:"source"`
	Alternatives   []string         `json:"alternatives,omitempty"`
	MatchedPhrase  string           `json:"matchedPhrase,omitempty"`
	MatchedAgainst string           `json:"matchedAgainst,omitempty"`
	Category       string           `json:"category,omitempty"`
	Difficulty     string           `json:"difficulty,omitempty"`
	Chunks         []Chunk          `json:"chunks,omitempty"`
	PhraseMatches  int              `json:"phraseMatches,omitempty"`
	WordFills      int              `json:"wordFills,omitempty"`
	Sentences      []SentenceResult `json:"sentences,omitempty"`
	ContextUsed    *ContextSummary  `json:"contextUsed,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// Chunk is one piece emitted by the sentence chunker.
type Chunk struct {
	Kind       ChunkKind `json:"type"`
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	Confidence float64   `json:"confidence"`
	Length     int       `json:"length"`
}

// SentenceResult is the per-sentence outcome inside a paragraph translation.
type SentenceResult struct {
	TranslationResult
	Index          int    `json:"sentenceIndex"`
	Input          string `json:"input"`
	Resolved       string `json:"resolved,omitempty"`
	ContextApplied bool   `json:"contextApplied"`
}

// ContextSummary reports what the context tracker accumulated.
type ContextSummary struct {
	EntitiesTracked    int    `json:"entitiesTracked"`
	Tense              Tense  `json:"tense"`
	LocationsTracked   int    `json:"locationsTracked"`
	TimeContext        Tense  `json:"timeContext"`
	SentencesInHistory int    `json:"sentencesInHistory"`
	LastSubject        string `json:"lastSubject,omitempty"`
}

// ParagraphResult is the aggregate of a context-aware paragraph translation.
type ParagraphResult struct {
	Translation   string           `json:"translation"`
	Confidence    float64          `json:"confidence"`
	SentenceCount int              `json:"sentenceCount"`
	Sentences     []SentenceResult `json:"sentences"`
	ContextUsed   ContextSummary   `json:"contextUsed"`
}
