package domain

import (
	"time"

	"github.com/google/uuid"
)

// KeyPrefix is the default prefix for every key catsearch writes to a shared store.
const KeyPrefix = "catsearch:"

// CachedSearchResult is a persisted search result set.
// ResultData holds the binary encoded results; the cache store treats it as opaque.
type CachedSearchResult struct {
	CombinationID  uuid.UUID
	Locale         string
	SearchQuery    string
	SearchHash     uuid.UUID
	ResultData     []byte
	LastSearchTime time.Time
}

// CacheKey identifies a cached search result.
type CacheKey struct {
	CombinationID uuid.UUID
	Locale        string
	SearchHash    uuid.UUID
}

// Key returns the identifying triple of the record.
func (r *CachedSearchResult) Key() CacheKey {
	return CacheKey{
		CombinationID: r.CombinationID,
		Locale:        r.Locale,
		SearchHash:    r.SearchHash,
	}
}

// String formats the key as combination:locale:hash.
func (k CacheKey) String() string {
	return k.CombinationID.String() + ":" + k.Locale + ":" + k.SearchHash.String()
}
