package query

import "strings"

// Parse splits a raw query string into generic terms, one per word.
// Case is folded and duplicate whitespace is ignored.
func Parse(raw string) []Term {
	words := strings.Fields(strings.ToLower(raw))
	terms := make([]Term, 0, len(words))
	for _, w := range words {
		terms = append(terms, Term{typ: TypeGeneric, value: w})
	}
	return terms
}
