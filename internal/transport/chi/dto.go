package chi

import (
	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/catsearch/internal/usecase/search"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeQueryTooLong     ErrorResponseCode = "query_too_long"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchParams are the query parameters of GET /v1/search.
type SearchParams struct {
	CombinationID string
	Locale        *string
	Q             string
	Page          *int
	Limit         *int
}

// EvictParams are the query parameters of POST /v1/cache/evict.
type EvictParams struct {
	MaxAgeSec *int
}

// QueryResponse echoes the parsed query.
type QueryResponse struct {
	CombinationID string `json:"combination_id"`
	Locale        string `json:"locale"`
	Q             string `json:"q"`
	Hash          string `json:"hash"`
}

// ResultResponse is a single item or recipe result. Relevance is carried
// by position in the result list.
type ResultResponse struct {
	Type              string           `json:"type"`
	Name              string           `json:"name"`
	ID                *string          `json:"id,omitempty"`
	NormalRecipeID    *string          `json:"normal_recipe_id,omitempty"`
	ExpensiveRecipeID *string          `json:"expensive_recipe_id,omitempty"`
	Recipes           []ResultResponse `json:"recipes,omitempty"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Query   QueryResponse    `json:"query"`
	Results []ResultResponse `json:"results"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	Cached  bool             `json:"cached"`
}

// EvictResponse reports how many cached records were deleted.
type EvictResponse struct {
	Deleted int `json:"deleted"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func pageToResponse(p *searchuc.Page) SearchResponse {
	results := make([]ResultResponse, 0, len(p.Results))
	for _, r := range p.Results {
		results = append(results, resultToResponse(r))
	}
	page := 1
	if p.Limit > 0 {
		page = p.Offset/p.Limit + 1
	}
	return SearchResponse{
		Query: QueryResponse{
			CombinationID: p.Query.CombinationID().String(),
			Locale:        p.Query.Locale(),
			Q:             p.Query.RawString(),
			Hash:          p.Query.Hash().String(),
		},
		Results: results,
		Total:   p.Total,
		Page:    page,
		Limit:   p.Limit,
		Cached:  p.Cached,
	}
}

func resultToResponse(r result.Result) ResultResponse {
	resp := ResultResponse{Type: r.Type(), Name: r.Name()}
	switch v := r.(type) {
	case *result.ItemResult:
		resp.ID = idString(v.ID())
		for _, recipe := range v.Recipes().All() {
			resp.Recipes = append(resp.Recipes, resultToResponse(recipe))
		}
	case *result.RecipeResult:
		resp.NormalRecipeID = idString(v.NormalID())
		resp.ExpensiveRecipeID = idString(v.ExpensiveID())
	}
	return resp
}

func idString(id uuid.NullUUID) *string {
	if !id.Valid {
		return nil
	}
	s := id.UUID.String()
	return &s
}
