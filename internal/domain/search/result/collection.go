package result

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection deduplicates results by (type, name), merging on collision.
// Results with an empty name are never merged; each one is kept as its own
// entry. Iteration follows first insertion. The zero value is ready to use.
// A Collection is not safe for concurrent use.
type Collection[T Result] struct {
	entries *orderedmap.OrderedMap[string, T]
	anon    int
}

// NewCollection creates a collection holding the given results.
func NewCollection[T Result](results ...T) *Collection[T] {
	c := &Collection[T]{}
	for _, r := range results {
		c.Add(r)
	}
	return c
}

func (c *Collection[T]) init() {
	if c.entries == nil {
		c.entries = orderedmap.New[string, T]()
	}
}

// Add inserts r, or merges it into the entry already stored under its key.
// The stored entry keeps its identity.
func (c *Collection[T]) Add(r T) {
	c.init()
	k, ok := key(r)
	if !ok {
		// Anonymous keys contain no "|" and cannot collide with real ones.
		c.anon++
		c.entries.Set("#"+strconv.Itoa(c.anon), r)
		return
	}
	if existing, found := c.entries.Get(k); found {
		Merge(existing, r)
		return
	}
	c.entries.Set(k, r)
}

// Remove deletes the entry stored under the key of r.
// Anonymous results are removed by identity.
func (c *Collection[T]) Remove(r T) {
	if c.entries == nil {
		return
	}
	if k, ok := key(r); ok {
		c.entries.Delete(k)
		return
	}
	for p := c.entries.Oldest(); p != nil; p = p.Next() {
		if any(p.Value) == any(r) {
			c.entries.Delete(p.Key)
			return
		}
	}
}

// Get returns the entry stored for the given type and name.
func (c *Collection[T]) Get(typ, name string) (T, bool) {
	var zero T
	if c.entries == nil || name == "" {
		return zero, false
	}
	return c.entries.Get(typ + "|" + name)
}

// All returns the entries in insertion order.
func (c *Collection[T]) All() []T {
	if c.entries == nil {
		return nil
	}
	out := make([]T, 0, c.entries.Len())
	for p := c.entries.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Len returns the number of entries.
func (c *Collection[T]) Len() int {
	if c.entries == nil {
		return 0
	}
	return c.entries.Len()
}
