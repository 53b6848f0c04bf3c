package translation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockPhraseSource struct {
	LoadPhrasesFunc func(ctx context.Context) ([]domain.PhraseRecord, error)
}

func (m *mockPhraseSource) LoadPhrases(ctx context.Context) ([]domain.PhraseRecord, error) {
	if m.LoadPhrasesFunc != nil {
		return m.LoadPhrasesFunc(ctx)
	}
	return nil, nil
}

type mockRemote struct {
	TranslateFunc func(ctx context.Context, text string, dir domain.Direction) (string, error)
	calls         int
}

func (m *mockRemote) Translate(ctx context.Context, text string, dir domain.Direction) (string, error) {
	m.calls++
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, dir)
	}
	return "", errors.New("not configured")
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func r(pidgin, category string, english ...string) domain.PhraseRecord {
	return domain.PhraseRecord{Pidgin: pidgin, English: english, Category: category, Difficulty: domain.DefaultDifficulty}
}

func fixtureRecords() []domain.PhraseRecord {
	return []domain.PhraseRecord{
		r("Howzit?", "greetings", "how are you?"),
		r("How you stay?", "greetings", "how are you?"),
		r("Wassup?", "greetings", "how are you?"),
		r("Eh, how you?", "greetings", "how are you?"),
		r("I no know", "general", "I don't know"),
		r("wea", "general", "where"),
		r("Grindz", "food", "food"),
		r("Food truck grindz", "food", "food truck"),
		r("How much dis?", "shopping", "how much"),
		r("Hot", "weather", "hot"),
		r("Broke da mouth", "food", "delicious", "very tasty"),
		r("aaaaaaaaaa bbbbbbbbbbbbbb", "test", "long form"),
		{Pidgin: "Akamai", English: []string{"smart"}, Category: "general", Difficulty: "advanced"},
	}
}

func newTestService(t *testing.T, remote remoteTranslator) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	src := &mockPhraseSource{
		LoadPhrasesFunc: func(context.Context) ([]domain.PhraseRecord, error) {
			return fixtureRecords(), nil
		},
	}
	svc := NewService(logger, src, remote, Options{})
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
	return svc
}

// ---------------------------------------------------------------------------
// Reload
// ---------------------------------------------------------------------------

func TestService_Reload(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	assert.True(t, svc.Loaded())

	st, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 13, st.Records)
	assert.Equal(t, 0, st.Skipped)
}

func TestService_Reload_SourceError(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	boom := errors.New("connection refused")
	svc := NewService(logger, &mockPhraseSource{
		LoadPhrasesFunc: func(context.Context) ([]domain.PhraseRecord, error) { return nil, boom },
	}, nil, Options{})

	_, err := svc.Reload(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, svc.Loaded())

	_, err = svc.Stats()
	assert.ErrorIs(t, err, domain.ErrIndexNotLoaded)
}

func TestService_Reload_EmptySourceKeepsPreviousIndex(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	calls := 0
	svc := NewService(logger, &mockPhraseSource{
		LoadPhrasesFunc: func(context.Context) ([]domain.PhraseRecord, error) {
			calls++
			if calls == 1 {
				return fixtureRecords(), nil
			}
			return []domain.PhraseRecord{{Pidgin: "", English: []string{"x"}}}, nil
		},
	}, nil, Options{})

	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	_, err = svc.Reload(context.Background())
	require.ErrorIs(t, err, domain.ErrEmptyDataSource)

	res := svc.TranslateEnglishToPidgin("how are you?")
	require.NotNil(t, res)
	assert.Equal(t, "Howzit?", res.Translation)
}

func TestService_NotLoaded(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, &mockPhraseSource{}, nil, Options{})

	assert.Nil(t, svc.TranslateEnglishToPidgin("how are you?"))
	assert.Nil(t, svc.TranslatePidginToEnglish("howzit?"))
	assert.Nil(t, svc.TranslateSentence("hello", domain.DirectionEngToPidgin))
	assert.Nil(t, svc.TranslateParagraph("One. Two.", domain.DirectionEngToPidgin))
	assert.Empty(t, svc.GetSuggestions("how", 5))

	_, err := svc.Translate(context.Background(), TranslateInput{Text: "hello", Mode: domain.TranslateModeLocal})
	assert.ErrorIs(t, err, domain.ErrIndexNotLoaded)

	_, err = svc.RandomPhrase("")
	assert.ErrorIs(t, err, domain.ErrIndexNotLoaded)
}

// ---------------------------------------------------------------------------
// English -> Pidgin cascade
// ---------------------------------------------------------------------------

func TestService_TranslateEnglishToPidgin_Exact(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res := svc.TranslateEnglishToPidgin("  How are you?")

	require.NotNil(t, res)
	assert.Equal(t, "Howzit?", res.Translation)
	assert.Equal(t, domain.ConfidenceExact, res.Confidence)
	assert.Equal(t, domain.SourceExactMatch, res.Source)
	assert.Equal(t, []string{"How you stay?", "Wassup?"}, res.Alternatives)
	assert.Equal(t, "greetings", res.Category)
}

func TestService_TranslateEnglishToPidgin_Partial(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res := svc.TranslateEnglishToPidgin("well I don't know man")

	require.NotNil(t, res)
	assert.Equal(t, "I no know", res.Translation)
	assert.Equal(t, domain.ConfidencePartial, res.Confidence)
	assert.Equal(t, domain.SourcePartialMatch, res.Source)
	assert.Equal(t, "i don't know", res.MatchedPhrase)
}

func TestService_TranslateEnglishToPidgin_PartialPrefersEarliestStart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	// "how much" starts before "food truck"
	res := svc.TranslateEnglishToPidgin("how much food truck")

	require.NotNil(t, res)
	assert.Equal(t, domain.SourcePartialMatch, res.Source)
	assert.Equal(t, "how much", res.MatchedPhrase)
}

func TestService_TranslateEnglishToPidgin_ContainedLongestKeyFirst(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res := svc.TranslateEnglishToPidgin("myfood truckstop")

	require.NotNil(t, res)
	assert.Equal(t, "Food truck grindz", res.Translation)
	assert.Equal(t, domain.ConfidenceContained, res.Confidence)
	assert.Equal(t, domain.SourceContainedMatch, res.Source)
	assert.Equal(t, "food truck", res.MatchedPhrase)
}

func TestService_TranslateEnglishToPidgin_NoMatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	assert.Nil(t, svc.TranslateEnglishToPidgin("xyz qrs"))
	assert.Nil(t, svc.TranslateEnglishToPidgin("   "))
	// no fuzzy matching in this direction
	assert.Nil(t, svc.TranslateEnglishToPidgin("delicius"))
}

// ---------------------------------------------------------------------------
// Pidgin -> English cascade
// ---------------------------------------------------------------------------

func TestService_TranslatePidginToEnglish_Exact(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res := svc.TranslatePidginToEnglish("BROKE DA MOUTH")

	require.NotNil(t, res)
	assert.Equal(t, "delicious", res.Translation)
	assert.Equal(t, domain.ConfidenceExact, res.Confidence)
	assert.Equal(t, domain.SourceExactMatch, res.Source)
}

func TestService_TranslatePidginToEnglish_Fuzzy(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	known := strings.Repeat("da kine ", 6) + "ho" // 50 runes
	svc := NewService(logger, &mockPhraseSource{
		LoadPhrasesFunc: func(context.Context) ([]domain.PhraseRecord, error) {
			return []domain.PhraseRecord{r(known, "general", "the thing")}, nil
		},
	}, nil, Options{})
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	// nine substitutions over fifty runes
	input := "zzzzzzzzz" + known[9:]
	res := svc.TranslatePidginToEnglish(input)

	require.NotNil(t, res)
	assert.Equal(t, "the thing", res.Translation)
	assert.Equal(t, domain.SourceFuzzyMatch, res.Source)
	assert.InDelta(t, 0.82, res.Confidence, 1e-9)
	assert.Equal(t, known, res.MatchedAgainst)
}

func TestService_TranslatePidginToEnglish_BelowThreshold(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	assert.Nil(t, svc.TranslatePidginToEnglish("completely different"))
}

// ---------------------------------------------------------------------------
// Sentence and paragraph
// ---------------------------------------------------------------------------

func TestService_TranslateSentence_Chunks(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res := svc.TranslateSentence("I don't know where he went", domain.DirectionEngToPidgin)

	require.NotNil(t, res)
	assert.Equal(t, "I no know wea he went", res.Translation)
	assert.Equal(t, domain.SourceChunkFallback, res.Source)
	assert.Equal(t, 1, res.PhraseMatches)
	assert.Equal(t, 3, res.WordFills)
}

func TestService_TranslateParagraph(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res := svc.TranslateParagraph("My uncle went fishing. He caught a big fish.", domain.DirectionEngToPidgin)

	require.NotNil(t, res)
	require.Len(t, res.Sentences, 2)
	assert.Equal(t, "my uncle caught a big fish.", res.Sentences[1].Resolved)
	assert.Equal(t, "My uncle caught a big fish.", res.Sentences[1].Translation)
	assert.Equal(t, 2, res.ContextUsed.SentencesInHistory)
}

// ---------------------------------------------------------------------------
// Suggestions, similarity, browsing
// ---------------------------------------------------------------------------

func TestService_GetSuggestions(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	got := svc.GetSuggestions("Ho", 0)
	require.Len(t, got, 3)
	assert.Equal(t, "hot", got[0].Text)
	assert.Equal(t, "how much", got[1].Text)
	assert.Equal(t, "how are you?", got[2].Text)
	assert.Equal(t, "Howzit?", got[2].Pidgin)

	assert.Len(t, svc.GetSuggestions("ho", 2), 2)
	assert.Empty(t, svc.GetSuggestions("h", 5))
	assert.Empty(t, svc.GetSuggestions("zz", 5))
}

func TestService_CalculateSimilarity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	assert.Equal(t, 1.0, svc.CalculateSimilarity("howzit", "howzit"))
	assert.Equal(t, 0.0, svc.CalculateSimilarity("abc", ""))
	assert.InDelta(t, svc.CalculateSimilarity("grindz", "grinds"), svc.CalculateSimilarity("grinds", "grindz"), 1e-12)
}

func TestService_PhrasesByCategory(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	got, err := svc.PhrasesByCategory("food", 0)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "food", got[0].English)
	assert.Equal(t, "Grindz", got[0].Pidgin)

	got, err = svc.PhrasesByCategory("nothing", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.PhrasesByCategory(" ", 5)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_RandomPhrase(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	p, err := svc.RandomPhrase("advanced")
	require.NoError(t, err)
	assert.Equal(t, "Akamai", p.Pidgin)

	_, err = svc.RandomPhrase("expert")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Translate pipeline
// ---------------------------------------------------------------------------

func TestService_Translate_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	tests := []struct {
		name  string
		input TranslateInput
		field string
	}{
		{"empty text", TranslateInput{Text: "  "}, "text"},
		{"too long", TranslateInput{Text: strings.Repeat("a", 5001)}, "text"},
		{"bad direction", TranslateInput{Text: "hi", Direction: "eng-to-french"}, "direction"},
		{"bad mode", TranslateInput{Text: "hi", Mode: "cloud"}, "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Translate(context.Background(), tt.input)
			require.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestService_Translate_LocalExact(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res, err := svc.Translate(context.Background(), TranslateInput{Text: "how are you?"})

	require.NoError(t, err)
	assert.Equal(t, "Howzit?", res.Translation)
	assert.Equal(t, domain.SourceExactMatch, res.Source)
}

func TestService_Translate_LowFuzzyMultiWordFallsToChunker(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	input := "zzzzzzzaaa bbbbbbbbbbbbbb"

	direct := svc.TranslatePidginToEnglish(input)
	require.NotNil(t, direct)
	assert.Equal(t, domain.SourceFuzzyMatch, direct.Source)
	assert.InDelta(t, 0.72, direct.Confidence, 1e-9)

	res, err := svc.Translate(context.Background(), TranslateInput{
		Text:      input,
		Direction: domain.DirectionPidginToEng,
		Mode:      domain.TranslateModeLocal,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceChunkFallback, res.Source)
	assert.Equal(t, "Zzzzzzzaaa bbbbbbbbbbbbbb", res.Translation)
}

func TestService_Translate_Paragraph(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	res, err := svc.Translate(context.Background(), TranslateInput{
		Text: "My uncle went fishing. He caught a big fish.",
		Mode: domain.TranslateModeLocal,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceParagraph, res.Source)
	assert.Len(t, res.Sentences, 2)
	require.NotNil(t, res.ContextUsed)
	assert.Equal(t, 1, res.ContextUsed.EntitiesTracked)
}

func TestService_Translate_RemoteModes(t *testing.T) {
	t.Parallel()

	ok := &mockRemote{TranslateFunc: func(_ context.Context, text string, dir domain.Direction) (string, error) {
		assert.Equal(t, domain.DirectionEngToPidgin, dir)
		return " Howzit, brah ", nil
	}}
	failing := func() *mockRemote {
		return &mockRemote{TranslateFunc: func(context.Context, string, domain.Direction) (string, error) {
			return "", errors.New("upstream 503")
		}}
	}

	t.Run("auto uses remote", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, ok)
		res, err := svc.Translate(context.Background(), TranslateInput{Text: "hello friend"})
		require.NoError(t, err)
		assert.Equal(t, "Howzit, brah", res.Translation)
		assert.Equal(t, domain.SourceRemote, res.Source)
		assert.Equal(t, domain.ConfidenceRemote, res.Confidence)
	})

	t.Run("auto falls back to local", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, failing())
		res, err := svc.Translate(context.Background(), TranslateInput{Text: "how are you?"})
		require.NoError(t, err)
		assert.Equal(t, "Howzit?", res.Translation)
		assert.Empty(t, res.Error)
	})

	t.Run("remote failure is a passthrough", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, failing())
		res, err := svc.Translate(context.Background(), TranslateInput{Text: "how are you?", Mode: domain.TranslateModeRemote})
		require.NoError(t, err)
		assert.Equal(t, "how are you?", res.Translation)
		assert.Equal(t, domain.SourcePassthrough, res.Source)
		assert.Zero(t, res.Confidence)
		assert.Contains(t, res.Error, "upstream 503")
	})

	t.Run("remote mode without translator", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, nil)
		_, err := svc.Translate(context.Background(), TranslateInput{Text: "hi", Mode: domain.TranslateModeRemote})
		assert.ErrorIs(t, err, domain.ErrRemoteDisabled)
	})

	t.Run("local skips remote", func(t *testing.T) {
		t.Parallel()
		m := &mockRemote{}
		svc := newTestService(t, m)
		_, err := svc.Translate(context.Background(), TranslateInput{Text: "how are you?", Mode: domain.TranslateModeLocal})
		require.NoError(t, err)
		assert.Zero(t, m.calls)
	})
}

func TestService_TranslateParagraphInput(t *testing.T) {
	t.Parallel()

	t.Run("translates locally even with a remote", func(t *testing.T) {
		t.Parallel()
		m := &mockRemote{}
		svc := newTestService(t, m)
		res, err := svc.TranslateParagraphInput(TranslateInput{
			Text: "  My uncle went fishing. He caught a big fish.  ",
			Mode: domain.TranslateModeRemote,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.SentenceCount)
		assert.Zero(t, m.calls)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, nil)
		_, err := svc.TranslateParagraphInput(TranslateInput{Text: "   ", Direction: "sideways"})
		require.ErrorIs(t, err, domain.ErrValidation)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Errors, 2)
	})

	t.Run("not loaded", func(t *testing.T) {
		t.Parallel()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewService(logger, &mockPhraseSource{}, nil, Options{})
		_, err := svc.TranslateParagraphInput(TranslateInput{Text: "One. Two."})
		assert.ErrorIs(t, err, domain.ErrIndexNotLoaded)
	})
}
