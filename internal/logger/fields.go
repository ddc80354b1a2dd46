package logger

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// CacheKeyFields returns the fields identifying a cached search result.
func CacheKeyFields(key domain.CacheKey) []zap.Field {
	return []zap.Field{
		zap.Stringer("combination_id", key.CombinationID),
		zap.String("locale", key.Locale),
		zap.Stringer("hash", key.SearchHash),
	}
}
