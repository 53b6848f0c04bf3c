// Package phrase stores the phrase dictionary in PostgreSQL. The translation
// engine reads it once per (re)load; the import command writes it.
package phrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pidgin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

const (
	table = "phrases"

	// upsertChunkSize keeps a single INSERT well under the 65535 parameter limit.
	upsertChunkSize = 500
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type phraseRow struct {
	ID         uuid.UUID `db:"id"`
	Pidgin     string    `db:"pidgin"`
	English    []string  `db:"english"`
	Category   string    `db:"category"`
	Difficulty string    `db:"difficulty"`
}

// Repo provides phrase persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new phrase repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// LoadPhrases returns every stored phrase in import order. Rows that fail
// record validation are dropped.
func (r *Repo) LoadPhrases(ctx context.Context) ([]domain.PhraseRecord, error) {
	query, args, err := psql.
		Select("id", "pidgin", "english", "category", "difficulty").
		From(table).
		OrderBy("position ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []phraseRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "phrases", "all")
	}

	out := make([]domain.PhraseRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok := domain.NewPhraseRecord(row.Pidgin, row.English, &row.Category, &row.Difficulty)
		if !ok {
			continue
		}
		rec.ID = row.ID
		out = append(out, rec)
	}
	return out, nil
}

// Count returns the number of stored phrases.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "phrases", "count")
	}
	return n, nil
}

// BulkUpsert inserts records keyed by (pidgin, english), updating category,
// difficulty and position of rows that already exist. Records repeating an
// earlier key in the same call are ignored. Positions continue after the
// highest stored one, so every call orders its records after those already
// present and re-imported rows move to their new place. Returns the number
// of rows written.
func (r *Repo) BulkUpsert(ctx context.Context, records []domain.PhraseRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	type positioned struct {
		rec domain.PhraseRecord
		pos int
	}
	seen := make(map[string]struct{}, len(records))
	unique := make([]positioned, 0, len(records))
	for i, rec := range records {
		key := rec.Pidgin + "\x00" + strings.Join(rec.English, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, positioned{rec: rec, pos: i})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	base, err := r.nextPosition(ctx)
	if err != nil {
		return 0, err
	}

	var written int64
	for start := 0; start < len(unique); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(unique))

		ins := psql.Insert(table).Columns("pidgin", "english", "category", "difficulty", "position")
		for _, p := range unique[start:end] {
			ins = ins.Values(p.rec.Pidgin, p.rec.English, p.rec.Category, p.rec.Difficulty, base+p.pos)
		}
		ins = ins.Suffix(`ON CONFLICT (pidgin, english) DO UPDATE SET
			category = EXCLUDED.category,
			difficulty = EXCLUDED.difficulty,
			position = EXCLUDED.position,
			updated_at = now()`)

		query, args, err := ins.ToSql()
		if err != nil {
			return written, fmt.Errorf("build upsert: %w", err)
		}

		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return written, postgres.MapError(err, "phrases", fmt.Sprintf("chunk %d", start/upsertChunkSize))
		}
		written += tag.RowsAffected()
	}

	return written, nil
}

func (r *Repo) nextPosition(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COALESCE(max(position) + 1, 0)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build max position: %w", err)
	}

	var next int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&next); err != nil {
		return 0, postgres.MapError(err, "phrases", "max position")
	}
	return next, nil
}

// DeleteAll removes every stored phrase. Used by full-replace imports inside
// a transaction together with BulkUpsert.
func (r *Repo) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := psql.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "phrases", "all")
	}
	return tag.RowsAffected(), nil
}
