package searchcache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catsearch/internal/db/sqlite"
	"github.com/kailas-cloud/catsearch/internal/domain"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQL(db)
}

func TestSQLStore_PersistFind(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	rec := testRecord(t)

	require.NoError(t, s.Persist(ctx, rec))

	got, err := s.Find(ctx, rec.Key())
	require.NoError(t, err)
	assert.Equal(t, rec.Key(), got.Key())
	assert.Equal(t, rec.SearchQuery, got.SearchQuery)
	assert.Equal(t, rec.ResultData, got.ResultData)
	assert.True(t, rec.LastSearchTime.Equal(got.LastSearchTime))
}

func TestSQLStore_PersistUpserts(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	rec := testRecord(t)
	require.NoError(t, s.Persist(ctx, rec))

	rec.ResultData = []byte{0x02, 0x03}
	rec.LastSearchTime = rec.LastSearchTime.Add(time.Minute)
	require.NoError(t, s.Persist(ctx, rec))

	got, err := s.Find(ctx, rec.Key())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, got.ResultData)
	assert.True(t, rec.LastSearchTime.Equal(got.LastSearchTime))

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLStore_FindMiss(t *testing.T) {
	s := newTestSQLStore(t)
	_, err := s.Find(context.Background(), testRecord(t).Key())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLStore_KeyComponentsAreDistinct(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	rec := testRecord(t)
	require.NoError(t, s.Persist(ctx, rec))

	other := rec.Key()
	other.Locale = "de"
	_, err := s.Find(ctx, other)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLStore_DeleteExpired(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	old := testRecord(t)
	old.LastSearchTime = testTime.Add(-time.Hour)
	require.NoError(t, s.Persist(ctx, old))

	fresh := testRecord(t)
	fresh.Locale = "de"
	require.NoError(t, s.Persist(ctx, fresh))

	n, err := s.DeleteExpired(ctx, testTime)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Find(ctx, old.Key())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Find(ctx, fresh.Key())
	assert.NoError(t, err)
}

func TestSQLStore_EmptyPayload(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	rec := testRecord(t)
	rec.ResultData = nil
	require.NoError(t, s.Persist(ctx, rec))

	got, err := s.Find(ctx, rec.Key())
	require.NoError(t, err)
	assert.Empty(t, got.ResultData)
}

func TestSQLStore_ClosedDB(t *testing.T) {
	db, err := sql.Open(sqlite.DriverName, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s := NewSQL(db)
	assert.Error(t, s.Ping(context.Background()))
	assert.Error(t, s.Persist(context.Background(), testRecord(t)))
}
