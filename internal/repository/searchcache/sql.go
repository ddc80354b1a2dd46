package searchcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// SQLStore keeps cached search results in the cached_search_result table.
type SQLStore struct {
	db *sql.DB
}

// NewSQL creates a SQL-backed cache store over a migrated database.
func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Find returns the record for key or domain.ErrNotFound.
func (s *SQLStore) Find(ctx context.Context, key domain.CacheKey) (*domain.CachedSearchResult, error) {
	const query = `
		SELECT search_query, result_data, last_search_time
		FROM cached_search_result
		WHERE combination_id = ? AND locale = ? AND search_hash = ?
	`
	var (
		rec = domain.CachedSearchResult{
			CombinationID: key.CombinationID,
			Locale:        key.Locale,
			SearchHash:    key.SearchHash,
		}
		lastMs int64
	)
	err := s.db.QueryRowContext(ctx, query, key.CombinationID.String(), key.Locale, key.SearchHash.String()).
		Scan(&rec.SearchQuery, &rec.ResultData, &lastMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select search cache %s: %w", key, err)
	}
	rec.LastSearchTime = time.UnixMilli(lastMs)
	return &rec, nil
}

// Persist upserts the record.
func (s *SQLStore) Persist(ctx context.Context, rec *domain.CachedSearchResult) error {
	const query = `
		INSERT INTO cached_search_result
			(combination_id, locale, search_hash, search_query, result_data, last_search_time)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (combination_id, locale, search_hash) DO UPDATE SET
			search_query = excluded.search_query,
			result_data = excluded.result_data,
			last_search_time = excluded.last_search_time
	`
	data := rec.ResultData
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, query,
		rec.CombinationID.String(),
		rec.Locale,
		rec.SearchHash.String(),
		rec.SearchQuery,
		data,
		rec.LastSearchTime.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert search cache %s: %w", rec.Key(), err)
	}
	return nil
}

// DeleteExpired removes records last searched before the given time.
func (s *SQLStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cached_search_result WHERE last_search_time < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired search cache: %w", err)
	}
	return affected(res)
}

// DeleteAll removes every cached search result.
func (s *SQLStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cached_search_result`)
	if err != nil {
		return 0, fmt.Errorf("delete search cache: %w", err)
	}
	return affected(res)
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func affected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
