package searchcache

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

const (
	fieldCombinationID  = "combination_id"
	fieldLocale         = "locale"
	fieldSearchQuery    = "search_query"
	fieldSearchHash     = "search_hash"
	fieldResultData     = "result_data"
	fieldLastSearchTime = "last_search_time"
)

// recordToHash converts a record to a map for HSET. result_data is stored as raw bytes.
func recordToHash(rec *domain.CachedSearchResult) map[string]string {
	return map[string]string{
		fieldCombinationID:  rec.CombinationID.String(),
		fieldLocale:         rec.Locale,
		fieldSearchQuery:    rec.SearchQuery,
		fieldSearchHash:     rec.SearchHash.String(),
		fieldResultData:     string(rec.ResultData),
		fieldLastSearchTime: strconv.FormatInt(rec.LastSearchTime.UnixMilli(), 10),
	}
}

// recordFromHash hydrates a record from an HGETALL result map.
func recordFromHash(m map[string]string) (*domain.CachedSearchResult, error) {
	combinationID, err := uuid.Parse(m[fieldCombinationID])
	if err != nil {
		return nil, fmt.Errorf("invalid combination_id: %w", err)
	}
	hash, err := uuid.Parse(m[fieldSearchHash])
	if err != nil {
		return nil, fmt.Errorf("invalid search_hash: %w", err)
	}
	ts, err := lastSearchTime(m)
	if err != nil {
		return nil, err
	}
	return &domain.CachedSearchResult{
		CombinationID:  combinationID,
		Locale:         m[fieldLocale],
		SearchQuery:    m[fieldSearchQuery],
		SearchHash:     hash,
		ResultData:     []byte(m[fieldResultData]),
		LastSearchTime: ts,
	}, nil
}

func lastSearchTime(m map[string]string) (time.Time, error) {
	ms, err := strconv.ParseInt(m[fieldLastSearchTime], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid last_search_time: %w", err)
	}
	return time.UnixMilli(ms), nil
}
