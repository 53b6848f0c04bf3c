// Package importer loads a phrase JSON export into the Postgres phrase store.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pidgin-backend/internal/adapter/source/jsonexport"
	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// PhraseRepo is the write side of the phrase store.
type PhraseRepo interface {
	BulkUpsert(ctx context.Context, records []domain.PhraseRecord) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

// TxManager runs fn in one database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options controls a single import run.
type Options struct {
	// DryRun decodes and validates without touching the database.
	DryRun bool
	// Replace deletes every stored phrase before writing the new set.
	Replace bool
}

// Result holds import statistics.
type Result struct {
	Decoded int
	Skipped int
	Deleted int64
	Written int64
	Total   int
}

// Run decodes body and writes the records. Deletion and upsert share one
// transaction, so a failed replace leaves the previous set in place.
func Run(ctx context.Context, body []byte, opts Options, repo PhraseRepo, tx TxManager, log *slog.Logger) (Result, error) {
	records, skipped, err := jsonexport.Decode(body)
	if err != nil {
		return Result{}, fmt.Errorf("decode export: %w", err)
	}

	result := Result{Decoded: len(records), Skipped: skipped}
	log.Info("export decoded",
		slog.Int("records", result.Decoded),
		slog.Int("skipped", result.Skipped),
	)

	if len(records) == 0 {
		return result, domain.ErrEmptyDataSource
	}

	if opts.DryRun {
		log.Info("dry run, nothing written")
		return result, nil
	}

	err = tx.RunInTx(ctx, func(ctx context.Context) error {
		if opts.Replace {
			deleted, err := repo.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("delete existing: %w", err)
			}
			result.Deleted = deleted
		}

		written, err := repo.BulkUpsert(ctx, records)
		if err != nil {
			return fmt.Errorf("upsert: %w", err)
		}
		result.Written = written
		return nil
	})
	if err != nil {
		return Result{Decoded: result.Decoded, Skipped: result.Skipped}, err
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return result, fmt.Errorf("count: %w", err)
	}
	result.Total = total

	log.Info("import completed",
		slog.Int64("deleted", result.Deleted),
		slog.Int64("written", result.Written),
		slog.Int("total", result.Total),
	)
	return result, nil
}
