package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	record := sampleRecord("run-1", time.Now().UTC().Truncate(time.Second))

	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.Question, loaded.Question)
	assert.Equal(t, record.Answer, loaded.Answer)
	assert.Equal(t, record.Citations, loaded.Citations)
	assert.Equal(t, record.Steps, loaded.Steps)
	assert.True(t, record.StartedAt.Equal(loaded.StartedAt))
	assert.True(t, record.FinishedAt.Equal(loaded.FinishedAt))
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	record := sampleRecord("run-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, record))

	record.Answer = "Revised answer."
	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Revised answer.", loaded.Answer)

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStoreLoadMissing(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.Load(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStoreListOrderAndLimit(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Save(ctx, sampleRecord("old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, sampleRecord("newest", base)))
	require.NoError(t, store.Save(ctx, sampleRecord("middle", base.Add(-time.Hour))))

	records, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newest", records[0].ID)
	assert.Equal(t, "middle", records[1].ID)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRecord("run-1", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "run-1"))

	_, err := store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
