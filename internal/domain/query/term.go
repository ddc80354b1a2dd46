package query

import "strings"

// Term type constants.
const (
	// TypeGeneric is a free-text keyword matched against names and translations.
	TypeGeneric = "generic"
)

// Term is an immutable tokenized fragment of a query.
type Term struct {
	typ   string
	value string
}

// NewTerm creates a term. Whitespace inside the value is collapsed.
func NewTerm(typ, value string) Term {
	return Term{typ: typ, value: normalizeValue(value)}
}

// Type returns the term type.
func (t Term) Type() string { return t.typ }

// Value returns the term value.
func (t Term) Value() string { return t.value }

func (t Term) canonical() string {
	return t.typ + "|" + t.value
}

func normalizeValue(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// Terms is an ordered multimap of terms keyed by type.
// Types keep first-seen order, terms of one type keep insertion order.
type Terms struct {
	types  []string
	byType map[string][]Term
}

// NewTerms builds a multimap from terms in the given order.
func NewTerms(terms ...Term) Terms {
	var t Terms
	for _, term := range terms {
		t.Add(term)
	}
	return t
}

// Add appends a term under its type.
func (t *Terms) Add(term Term) {
	if t.byType == nil {
		t.byType = make(map[string][]Term)
	}
	if _, ok := t.byType[term.typ]; !ok {
		t.types = append(t.types, term.typ)
	}
	t.byType[term.typ] = append(t.byType[term.typ], term)
}

// Types returns the term types in first-seen order.
func (t *Terms) Types() []string {
	out := make([]string, len(t.types))
	copy(out, t.types)
	return out
}

// Values returns the values of all terms of one type.
func (t *Terms) Values(typ string) []string {
	src := t.byType[typ]
	out := make([]string, 0, len(src))
	for _, term := range src {
		out = append(out, term.value)
	}
	return out
}

// All flattens the multimap: types in first-seen order, then insertion order.
func (t *Terms) All() []Term {
	out := make([]Term, 0, t.Len())
	for _, typ := range t.types {
		out = append(out, t.byType[typ]...)
	}
	return out
}

// Len returns the total number of terms.
func (t *Terms) Len() int {
	n := 0
	for _, terms := range t.byType {
		n += len(terms)
	}
	return n
}
