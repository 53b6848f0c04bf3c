package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation"
)

// translationService defines the minimal interface needed by TranslateHandler.
type translationService interface {
	Translate(ctx context.Context, in translation.TranslateInput) (*domain.TranslationResult, error)
	TranslateParagraphInput(in translation.TranslateInput) (*domain.ParagraphResult, error)
	GetSuggestions(partial string, limit int) []domain.Suggestion
	CalculateSimilarity(a, b string) float64
	PhrasesByCategory(category string, limit int) ([]domain.Phrase, error)
	RandomPhrase(difficulty string) (domain.Phrase, error)
}

// TranslateHandler serves the public translation endpoints.
type TranslateHandler struct {
	svc translationService
	log *slog.Logger
}

// NewTranslateHandler creates a TranslateHandler.
func NewTranslateHandler(svc translationService, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{svc: svc, log: logger.With("handler", "translate")}
}

type translateRequest struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
	Mode      string `json:"mode"`
}

func (req translateRequest) toInput() translation.TranslateInput {
	return translation.TranslateInput{
		Text:      req.Text,
		Direction: domain.Direction(req.Direction),
		Mode:      domain.TranslateMode(req.Mode),
	}
}

type suggestionsResponse struct {
	Query       string              `json:"query"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

type similarityResponse struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

type phrasesResponse struct {
	Category string          `json:"category"`
	Phrases  []domain.Phrase `json:"phrases"`
}

// Translate handles POST /api/translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Translate(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if res == nil {
		// The local pipeline always answers; a nil result means no index.
		respondError(w, r, h.log, domain.ErrIndexNotLoaded)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// TranslateParagraph handles POST /api/translate/paragraph.
func (h *TranslateHandler) TranslateParagraph(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	res, err := h.svc.TranslateParagraphInput(req.toInput())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Suggestions handles GET /api/suggestions?q=&limit=.
func (h *TranslateHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, err := queryInt(r, "limit", 0, 50)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		Query:       q,
		Suggestions: h.svc.GetSuggestions(q, limit),
	})
}

// Similarity handles GET /api/similarity?a=&b=.
func (h *TranslateHandler) Similarity(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if len(a) > 1000 || len(b) > 1000 {
		respondError(w, r, h.log, domain.NewValidationError("a,b", "too long"))
		return
	}

	writeJSON(w, http.StatusOK, similarityResponse{
		A:          a,
		B:          b,
		Similarity: h.svc.CalculateSimilarity(a, b),
	})
}

// Phrases handles GET /api/phrases?category=&limit=.
func (h *TranslateHandler) Phrases(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit, err := queryInt(r, "limit", 0, 100)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	phrases, err := h.svc.PhrasesByCategory(category, limit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, phrasesResponse{Category: category, Phrases: phrases})
}

// RandomPhrase handles GET /api/phrases/random?difficulty=.
func (h *TranslateHandler) RandomPhrase(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.RandomPhrase(r.URL.Query().Get("difficulty"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// queryInt parses an optional integer query parameter in [0, max].
func queryInt(r *http.Request, name string, def, max int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > max {
		return 0, domain.NewValidationError(name, "must be an integer between 0 and "+strconv.Itoa(max))
	}
	return n, nil
}
