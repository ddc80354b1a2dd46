package query

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// Query is a parsed search query scoped to one combination and locale.
// It is immutable; the hash is computed once from the terms.
type Query struct {
	combinationID uuid.UUID
	locale        string
	raw           string
	terms         Terms
	hash          uuid.UUID
}

// New validates the parameters and computes the query hash.
func New(combinationID uuid.UUID, locale, raw string, terms []Term) (*Query, error) {
	if combinationID == uuid.Nil {
		return nil, domain.ErrCombinationRequired
	}
	if locale == "" {
		return nil, fmt.Errorf("%w: locale is required", domain.ErrInvalidQuery)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no search terms", domain.ErrInvalidQuery)
	}
	return &Query{
		combinationID: combinationID,
		locale:        locale,
		raw:           raw,
		terms:         NewTerms(terms...),
		hash:          Hash(terms),
	}, nil
}

// FromString parses raw and builds a query from its terms.
func FromString(combinationID uuid.UUID, locale, raw string) (*Query, error) {
	return New(combinationID, locale, raw, Parse(raw))
}

// WithTerms returns a copy of the query with new terms and a recomputed hash.
func (q *Query) WithTerms(terms []Term) (*Query, error) {
	return New(q.combinationID, q.locale, q.raw, terms)
}

// CombinationID returns the combination the query is scoped to.
func (q *Query) CombinationID() uuid.UUID { return q.combinationID }

// Locale returns the locale of the query.
func (q *Query) Locale() string { return q.locale }

// RawString returns the query as typed by the user.
func (q *Query) RawString() string { return q.raw }

// Keywords returns the values of all generic terms.
func (q *Query) Keywords() []string { return q.terms.Values(TypeGeneric) }

// Hash returns the cache hash of the term set.
func (q *Query) Hash() uuid.UUID { return q.hash }

// CacheKey returns the triple the cache is keyed by.
func (q *Query) CacheKey() domain.CacheKey {
	return domain.CacheKey{
		CombinationID: q.combinationID,
		Locale:        q.locale,
		SearchHash:    q.hash,
	}
}
