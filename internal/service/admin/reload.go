package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

// ReloadPhrases rebuilds the translation index from its data source. The
// previous index keeps serving if the reload fails.
func (s *Service) ReloadPhrases(ctx context.Context) (phraseindex.Stats, error) {
	stats, err := s.reloader.Reload(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "phrase reload failed", slog.String("error", err.Error()))
		return stats, fmt.Errorf("admin.ReloadPhrases: %w", err)
	}

	s.log.InfoContext(ctx, "phrase index reloaded by admin",
		slog.Int("records", stats.Records),
		slog.Int("skipped", stats.Skipped))
	return stats, nil
}
