// Package jsonexport loads phrase records from a dictionary JSON export, read
// either from a local file or over HTTP.
//
// The export is an object with an "entries" array. Each entry carries a
// "pidgin" form, "english" as a string or an array of strings, and optional
// "category" and "difficulty". A bare top-level array of entries is accepted
// too.
package jsonexport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second

	// maxBodySize caps downloaded exports at 32 MiB.
	maxBodySize = 32 << 20

	retryDelay = 500 * time.Millisecond
)

type entry struct {
	Pidgin     string  `json:"pidgin"`
	English    glosses `json:"english"`
	Category   *string `json:"category"`
	Difficulty *string `json:"difficulty"`
}

type export struct {
	Entries []json.RawMessage `json:"entries"`
}

// glosses accepts both "english": "x" and "english": ["x", "y"].
type glosses []string

func (g *glosses) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = glosses{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*g = list
	return nil
}

// Loader reads phrase records from a file path or a URL.
type Loader struct {
	path       string
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewFileLoader creates a Loader reading the export at path.
func NewFileLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{
		path: path,
		log:  logger.With("adapter", "jsonexport"),
	}
}

// NewURLLoader creates a Loader fetching the export from url. A zero timeout
// selects 15s.
func NewURLLoader(url string, timeout time.Duration, logger *slog.Logger) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Loader{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "jsonexport"),
	}
}

// LoadPhrases reads and decodes the export. Malformed entries are skipped.
// Returns domain.ErrEmptyDataSource when no usable record remains.
func (l *Loader) LoadPhrases(ctx context.Context) ([]domain.PhraseRecord, error) {
	var (
		body []byte
		err  error
	)
	if l.url != "" {
		body, err = l.fetch(ctx)
	} else {
		body, err = os.ReadFile(l.path)
		if err != nil {
			err = fmt.Errorf("jsonexport: read %s: %w", l.path, err)
		}
	}
	if err != nil {
		return nil, err
	}

	records, skipped, err := Decode(body)
	if err != nil {
		return nil, err
	}

	l.log.InfoContext(ctx, "phrase export loaded",
		slog.String("origin", l.origin()),
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped),
	)

	if len(records) == 0 {
		return nil, domain.ErrEmptyDataSource
	}
	return records, nil
}

// Decode parses an export body into records. It returns the usable records and
// the number of entries dropped as malformed. Only a body whose outer
// structure cannot be parsed is an error; an entry with wrongly typed fields
// is counted as skipped.
func Decode(body []byte) ([]domain.PhraseRecord, int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, 0, nil
	}

	var raw []json.RawMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, 0, fmt.Errorf("jsonexport: decode json: %w", err)
		}
	} else {
		var doc export
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, 0, fmt.Errorf("jsonexport: decode json: %w", err)
		}
		raw = doc.Entries
	}

	records := make([]domain.PhraseRecord, 0, len(raw))
	skipped := 0
	for _, msg := range raw {
		var e entry
		if err := json.Unmarshal(msg, &e); err != nil {
			skipped++
			continue
		}
		rec, ok := domain.NewPhraseRecord(e.Pidgin, e.English, e.Category, e.Difficulty)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("jsonexport: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.doWithRetry(ctx, req)
	if err != nil {
		l.log.ErrorContext(ctx, "jsonexport request failed", slog.String("url", l.url), slog.String("error", err.Error()))
		return nil, fmt.Errorf("jsonexport: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jsonexport: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("jsonexport: read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, errors.New("jsonexport: export exceeds size limit")
	}
	return body, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (l *Loader) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := l.httpClient.Do(req)

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
	l.log.WarnContext(ctx, "jsonexport retry", slog.String("url", l.url), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return l.httpClient.Do(req)
}

func (l *Loader) origin() string {
	if l.url != "" {
		return l.url
	}
	return l.path
}
