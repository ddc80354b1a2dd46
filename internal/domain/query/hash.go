package query

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// hashNamespace scopes query hashes inside the UUIDv5 name space.
var hashNamespace = uuid.MustParse("6f0c8a2e-3f43-4c8e-9d2b-7a51c0e2f4a9")

// Hash derives the cache key of a term set.
// The result does not depend on term order: the canonical type|value strings
// are sorted before hashing.
func Hash(terms []Term) uuid.UUID {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.canonical())
	}
	sort.Strings(parts)
	// Values never contain a newline after normalization.
	return uuid.NewSHA1(hashNamespace, []byte(strings.Join(parts, "\n")))
}
