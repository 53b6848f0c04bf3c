package translation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/contexttrack"
)

// Translate runs the full pipeline for one request.
//
// In auto and remote modes the remote translator is tried first. A remote
// failure in remote mode is reported as a zero-confidence passthrough with
// Error set; in auto mode the local engine takes over. Locally, paragraphs go
// through the context tracker, multi-word input needs a cascade confidence of
// at least 0.75, and anything else falls to the sentence chunker.
func (s *Service) Translate(ctx context.Context, in TranslateInput) (*domain.TranslationResult, error) {
	in.applyDefaults()
	if err := in.Validate(s.opts.MaxTextLength); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)

	if in.Mode != domain.TranslateModeLocal {
		res, err := s.translateRemote(ctx, text, in.Direction)
		switch {
		case err == nil:
			return res, nil
		case in.Mode == domain.TranslateModeRemote:
			if errors.Is(err, domain.ErrRemoteDisabled) {
				return nil, err
			}
			return &domain.TranslationResult{
				Translation: text,
				Source:      domain.SourcePassthrough,
				Error:       err.Error(),
			}, nil
		}
	}

	e := s.engine.Load()
	if e == nil {
		return nil, domain.ErrIndexNotLoaded
	}
	return s.translateLocal(e, text, in.Direction), nil
}

func (s *Service) translateRemote(ctx context.Context, text string, dir domain.Direction) (*domain.TranslationResult, error) {
	if s.remote == nil {
		return nil, domain.ErrRemoteDisabled
	}
	out, err := s.remote.Translate(ctx, text, dir)
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("remote translator returned empty text")
	}
	if err != nil {
		s.log.WarnContext(ctx, "remote translation failed",
			slog.String("direction", dir.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return &domain.TranslationResult{
		Translation: strings.TrimSpace(out),
		Confidence:  domain.ConfidenceRemote,
		Source:      domain.SourceRemote,
	}, nil
}

func (s *Service) translateLocal(e *engine, text string, dir domain.Direction) *domain.TranslationResult {
	if contexttrack.IsParagraph(text) {
		if pr := s.translateParagraph(e, text, dir); pr != nil {
			summary := pr.ContextUsed
			return &domain.TranslationResult{
				Translation: pr.Translation,
				Confidence:  pr.Confidence,
				Source:      domain.SourceParagraph,
				Sentences:   pr.Sentences,
				ContextUsed: &summary,
			}
		}
	}

	var res *domain.TranslationResult
	if dir == domain.DirectionPidginToEng {
		res = matchPidgin(e.index, text, s.opts.FuzzyThreshold)
	} else {
		res = matchEnglish(e.index, text)
	}
	if res != nil && (len(strings.Fields(text)) == 1 || res.Confidence >= domain.ConfidenceContained) {
		return res
	}

	if res := e.chunker.Translate(text, dir); res != nil {
		return res
	}

	return &domain.TranslationResult{
		Translation: text,
		Source:      domain.SourcePassthrough,
	}
}

// TranslateSentence translates one sentence with the chunker: exact sentence
// match first, greedy chunking otherwise. It returns nil when no index is
// loaded or the sentence is blank.
func (s *Service) TranslateSentence(sentence string, dir domain.Direction) *domain.TranslationResult {
	e := s.engine.Load()
	if e == nil {
		return nil
	}
	return e.TranslateSentence(sentence, dir)
}

// TranslateSentence makes an engine snapshot usable as a tracker's sentence
// translator. A whole paragraph reads one snapshot.
func (e *engine) TranslateSentence(sentence string, dir domain.Direction) *domain.TranslationResult {
	return e.chunker.Translate(sentence, dir)
}

// TranslateParagraph splits text into sentences and translates them in order,
// resolving leading pronouns from earlier sentences. It returns nil when no
// index is loaded or text holds no sentences.
func (s *Service) TranslateParagraph(text string, dir domain.Direction) *domain.ParagraphResult {
	e := s.engine.Load()
	if e == nil {
		return nil
	}
	return s.translateParagraph(e, text, dir)
}

func (s *Service) translateParagraph(e *engine, text string, dir domain.Direction) *domain.ParagraphResult {
	return contexttrack.NewTracker(e).TranslateParagraph(text, dir)
}

// TranslateParagraphInput validates in and translates its text sentence by
// sentence with context tracking. The remote translator is never used here.
func (s *Service) TranslateParagraphInput(in TranslateInput) (*domain.ParagraphResult, error) {
	in.applyDefaults()
	in.Mode = domain.TranslateModeLocal
	if err := in.Validate(s.opts.MaxTextLength); err != nil {
		return nil, err
	}

	e := s.engine.Load()
	if e == nil {
		return nil, domain.ErrIndexNotLoaded
	}
	pr := s.translateParagraph(e, strings.TrimSpace(in.Text), in.Direction)
	if pr == nil {
		return nil, domain.NewValidationError("text", "no sentences found")
	}
	return pr, nil
}
