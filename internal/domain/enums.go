package domain

// Direction is the translation direction.
type Direction string

const (
	DirectionEngToPidgin Direction = "eng-to-pidgin"
	DirectionPidginToEng Direction = "pidgin-to-eng"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	switch d {
	case DirectionEngToPidgin, DirectionPidginToEng:
		return true
	}
	return false
}

// MatchSource tags which strategy produced a TranslationResult.
type MatchSource string

const (
	SourceExactMatch      MatchSource = "exact_match"
	SourcePartialMatch    MatchSource = "partial_match"
	SourceContainedMatch  MatchSource = "contained_match"
	SourceFuzzyMatch      MatchSource = "fuzzy_match"
	SourceChunkFallback   MatchSource = "chunk_fallback"
	SourceContextFallback MatchSource = "context_fallback"
	SourcePassthrough     MatchSource = "passthrough"
	SourceRemote          MatchSource = "remote"
	SourceParagraph       MatchSource = "context_aware_paragraph"
)

func (s MatchSource) String() string { return string(s) }

// Tense is a detected narrative tense. The zero value means "unknown".
type Tense string

const (
	TenseUnknown Tense = ""
	TensePast    Tense = "past"
	TensePresent Tense = "present"
	TenseFuture  Tense = "future"
)

func (t Tense) String() string { return string(t) }

// TranslateMode selects whether the remote translator participates.
type TranslateMode string

const (
	TranslateModeAuto   TranslateMode = "auto"
	TranslateModeLocal  TranslateMode = "local"
	TranslateModeRemote TranslateMode = "remote"
)

func (m TranslateMode) String() string { return string(m) }

func (m TranslateMode) IsValid() bool {
	switch m {
	case TranslateModeAuto, TranslateModeLocal, TranslateModeRemote:
		return true
	}
	return false
}

// ChunkKind distinguishes phrase chunks from single-word fills.
type ChunkKind string

const (
	ChunkPhrase ChunkKind = "phrase"
	ChunkWord   ChunkKind = "word"
)
