// Package llm translates between English and Hawaiian Pidgin with Claude.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

const (
	defaultModel     = "claude-haiku-4-5"
	defaultMaxTokens = 1024
	defaultTimeout   = 15 * time.Second
)

// Config configures a Translator. Zero values select the defaults.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	BaseURL   string
	Timeout   time.Duration
}

// Translator is a remote translator backed by the Anthropic Messages API.
type Translator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

// NewTranslator creates a Translator. The SDK's own retries are disabled;
// the translation service falls back to the local engine instead.
func NewTranslator(cfg Config, logger *slog.Logger) *Translator {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Translator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		log:       logger.With("adapter", "llm"),
	}
}

// Translate asks the model for a translation of text in direction dir.
func (t *Translator) Translate(ctx context.Context, text string, dir domain.Direction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	msg, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: t.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text, dir))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", errors.New("llm: empty response")
	}

	out := cleanOutput(msg.Content[0].Text)
	if out == "" {
		return "", errors.New("llm: empty translation")
	}

	t.log.DebugContext(ctx, "llm translation",
		slog.String("direction", dir.String()),
		slog.String("model", t.model),
		slog.Duration("duration", time.Since(start)),
	)
	return out, nil
}

// buildPrompt creates the translation prompt for one request.
func buildPrompt(text string, dir domain.Direction) string {
	from, to := "English", "Hawaiian Pidgin (Hawaii Creole English)"
	if dir == domain.DirectionPidginToEng {
		from, to = to, from
	}

	return fmt.Sprintf(`You are a translator fluent in Hawaiian Pidgin (Hawaii Creole English) as spoken in Hawaii today.

Translate the following text from %s to %s.

Rules:
- Keep the meaning, tone and sentence structure natural for the target language
- Use common local spellings for Pidgin (da, dat, stay, wen, fo, brah, grindz)
- Keep names, numbers and punctuation unchanged
- Output ONLY the translation, no quotes, no notes, no explanations

Text:
%s`, from, to, text)
}

// cleanOutput strips whitespace and wrapping quotes the model sometimes adds.
func cleanOutput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
