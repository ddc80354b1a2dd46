package result

// Paginated is a fixed, ordered result list served page by page.
type Paginated struct {
	results []Result
	cached  bool
}

// NewPaginated wraps an ordered result list.
func NewPaginated(results []Result) *Paginated {
	p := &Paginated{results: make([]Result, 0, len(results))}
	p.results = append(p.results, results...)
	return p
}

// Add appends a result.
func (p *Paginated) Add(r Result) { p.results = append(p.results, r) }

// Count returns the number of results.
func (p *Paginated) Count() int { return len(p.results) }

// All returns every result in order.
func (p *Paginated) All() []Result {
	out := make([]Result, len(p.results))
	copy(out, p.results)
	return out
}

// Slice returns up to limit results starting at offset.
// Out-of-range arguments are clamped; the result may be empty.
func (p *Paginated) Slice(offset, limit int) []Result {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(p.results) {
		return []Result{}
	}
	end := len(p.results)
	if limit < end-offset {
		end = offset + limit
	}
	out := make([]Result, end-offset)
	copy(out, p.results[offset:end])
	return out
}

// IsCached reports whether the results were restored from the cache.
func (p *Paginated) IsCached() bool { return p.cached }

// MarkCached flags the results as restored from the cache.
func (p *Paginated) MarkCached() { p.cached = true }
