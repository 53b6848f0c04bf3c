package rest

import (
	"context"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/admin"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

type translationServiceMock struct {
	TranslateFunc           func(ctx context.Context, in translation.TranslateInput) (*domain.TranslationResult, error)
	TranslateParagraphFunc  func(in translation.TranslateInput) (*domain.ParagraphResult, error)
	GetSuggestionsFunc      func(partial string, limit int) []domain.Suggestion
	CalculateSimilarityFunc func(a, b string) float64
	PhrasesByCategoryFunc   func(category string, limit int) ([]domain.Phrase, error)
	RandomPhraseFunc        func(difficulty string) (domain.Phrase, error)
}

func (m *translationServiceMock) Translate(ctx context.Context, in translation.TranslateInput) (*domain.TranslationResult, error) {
	return m.TranslateFunc(ctx, in)
}

func (m *translationServiceMock) TranslateParagraphInput(in translation.TranslateInput) (*domain.ParagraphResult, error) {
	return m.TranslateParagraphFunc(in)
}

func (m *translationServiceMock) GetSuggestions(partial string, limit int) []domain.Suggestion {
	return m.GetSuggestionsFunc(partial, limit)
}

func (m *translationServiceMock) CalculateSimilarity(a, b string) float64 {
	return m.CalculateSimilarityFunc(a, b)
}

func (m *translationServiceMock) PhrasesByCategory(category string, limit int) ([]domain.Phrase, error) {
	return m.PhrasesByCategoryFunc(category, limit)
}

func (m *translationServiceMock) RandomPhrase(difficulty string) (domain.Phrase, error) {
	return m.RandomPhraseFunc(difficulty)
}

type adminServiceMock struct {
	LoginFunc         func(ctx context.Context, input admin.LoginInput) (*admin.LoginResult, error)
	ReloadPhrasesFunc func(ctx context.Context) (phraseindex.Stats, error)
}

func (m *adminServiceMock) Login(ctx context.Context, input admin.LoginInput) (*admin.LoginResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *adminServiceMock) ReloadPhrases(ctx context.Context) (phraseindex.Stats, error) {
	return m.ReloadPhrasesFunc(ctx)
}

type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (string, error) {
	return m.ValidateTokenFunc(ctx, token)
}
