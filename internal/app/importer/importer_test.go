package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

const exportBody = `{"entries":[
	{"pidgin":"Howzit?","english":["how are you?","hello"],"category":"greetings"},
	{"pidgin":"Grindz","english":"food"},
	{"pidgin":"","english":["broken"]}
]}`

type phraseRepoMock struct {
	BulkUpsertFunc func(ctx context.Context, records []domain.PhraseRecord) (int64, error)
	DeleteAllFunc  func(ctx context.Context) (int64, error)
	CountFunc      func(ctx context.Context) (int, error)
}

func (m *phraseRepoMock) BulkUpsert(ctx context.Context, records []domain.PhraseRecord) (int64, error) {
	return m.BulkUpsertFunc(ctx, records)
}

func (m *phraseRepoMock) DeleteAll(ctx context.Context) (int64, error) {
	return m.DeleteAllFunc(ctx)
}

func (m *phraseRepoMock) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_Upsert(t *testing.T) {
	t.Parallel()

	var got []domain.PhraseRecord
	repo := &phraseRepoMock{
		BulkUpsertFunc: func(_ context.Context, records []domain.PhraseRecord) (int64, error) {
			got = records
			return int64(len(records)), nil
		},
		DeleteAllFunc: func(context.Context) (int64, error) {
			t.Fatal("DeleteAll must not be called without Replace")
			return 0, nil
		},
		CountFunc: func(context.Context) (int, error) { return 10, nil },
	}
	tx := &txManagerMock{}

	res, err := Run(context.Background(), []byte(exportBody), Options{}, repo, tx, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 2, res.Decoded)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, int64(2), res.Written)
	assert.Equal(t, 10, res.Total)

	require.Len(t, got, 2)
	assert.Equal(t, "Howzit?", got[0].Pidgin)
	assert.Equal(t, []string{"food"}, got[1].English)
	assert.Equal(t, domain.DefaultCategory, got[1].Category)
}

func TestRun_Replace(t *testing.T) {
	t.Parallel()

	var order []string
	repo := &phraseRepoMock{
		DeleteAllFunc: func(context.Context) (int64, error) {
			order = append(order, "delete")
			return 7, nil
		},
		BulkUpsertFunc: func(_ context.Context, records []domain.PhraseRecord) (int64, error) {
			order = append(order, "upsert")
			return int64(len(records)), nil
		},
		CountFunc: func(context.Context) (int, error) { return 2, nil },
	}

	res, err := Run(context.Background(), []byte(exportBody), Options{Replace: true}, repo, &txManagerMock{}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"delete", "upsert"}, order)
	assert.Equal(t, int64(7), res.Deleted)
	assert.Equal(t, 2, res.Total)
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	tx := &txManagerMock{}
	res, err := Run(context.Background(), []byte(exportBody), Options{DryRun: true, Replace: true}, &phraseRepoMock{}, tx, testLogger())
	require.NoError(t, err)

	assert.Zero(t, tx.calls)
	assert.Equal(t, 2, res.Decoded)
	assert.Zero(t, res.Written)
}

func TestRun_EmptyExport(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), []byte(`{"entries":[{"pidgin":"x","english":[]}]}`), Options{}, &phraseRepoMock{}, &txManagerMock{}, testLogger())
	assert.ErrorIs(t, err, domain.ErrEmptyDataSource)
}

func TestRun_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), []byte(`{"entries":`), Options{}, &phraseRepoMock{}, &txManagerMock{}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode export")
}

func TestRun_UpsertFailure(t *testing.T) {
	t.Parallel()

	repo := &phraseRepoMock{
		DeleteAllFunc: func(context.Context) (int64, error) { return 3, nil },
		BulkUpsertFunc: func(context.Context, []domain.PhraseRecord) (int64, error) {
			return 0, errors.New("connection reset")
		},
		CountFunc: func(context.Context) (int, error) {
			t.Fatal("Count must not be called after a failed import")
			return 0, nil
		},
	}

	res, err := Run(context.Background(), []byte(exportBody), Options{Replace: true}, repo, &txManagerMock{}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert")
	assert.Zero(t, res.Deleted)
	assert.Equal(t, 2, res.Decoded)
}
