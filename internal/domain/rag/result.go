package rag

// Result is the outcome of one retrieval query: a synthesized answer and
// the ranked sources it was built from, relevance-descending.
type Result struct {
	answer   string
	sources  []Source
	tenantID string
}

// NewResult creates a query result.
func NewResult(answer string, sources []Source, tenantID string) Result {
	return Result{answer: answer, sources: sources, tenantID: tenantID}
}

// Empty returns the well-formed zero result for a tenant: no answer, no
// sources. Returned when retrieval degrades on backend failure.
func Empty(tenantID string) Result {
	return Result{sources: []Source{}, tenantID: tenantID}
}

// Answer returns the synthesized answer text.
func (r *Result) Answer() string { return r.answer }

// Sources returns the ranked sources.
func (r *Result) Sources() []Source { return r.sources }

// TenantID returns the tenant the query was scoped to.
func (r *Result) TenantID() string { return r.tenantID }
