// Package remote calls an external HTTP translation endpoint that accepts
// {"text", "direction"} and answers {"translatedText"}.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second

	// maxResponseSize caps a translation response at 1 MiB.
	maxResponseSize = 1 << 20

	retryDelay = 500 * time.Millisecond
)

type request struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Provider translates text through an HTTP endpoint.
type Provider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider posting to endpoint. apiKey, when set, is
// sent as a bearer token. A zero timeout selects 15s.
func NewProvider(endpoint, apiKey string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "remote"),
	}
}

// Translate sends text to the endpoint and returns the translated text.
func (p *Provider) Translate(ctx context.Context, text string, dir domain.Direction) (string, error) {
	payload, err := json.Marshal(request{Text: text, Direction: dir.String()})
	if err != nil {
		return "", fmt.Errorf("remote: encode request: %w", err)
	}

	p.log.DebugContext(ctx, "remote request", slog.String("direction", dir.String()), slog.Int("length", len(text)))

	resp, err := p.doWithRetry(ctx, payload)
	if err != nil {
		p.log.ErrorContext(ctx, "remote request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("remote: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return "", fmt.Errorf("remote: read body: %w", err)
	}
	if len(body) > maxResponseSize {
		return "", errors.New("remote: response exceeds size limit")
	}

	var out response
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(body, &out) == nil && out.Error != "" {
			return "", fmt.Errorf("remote: status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("remote: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("remote: decode json: %w", err)
	}
	return out.TranslatedText, nil
}

func (p *Provider) newRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The request is rebuilt for the retry since its body is consumed.
func (p *Provider) doWithRetry(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := p.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "remote retry", slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	req, err = p.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	return p.httpClient.Do(req)
}
