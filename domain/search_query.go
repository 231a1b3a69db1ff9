package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxQueryLength  = 200
)

// SearchFilters holds the structured filters of a search request. Nil price
// bounds mean "no bound"; empty strings mean "no filter". Absent filters
// never produce a filter clause.
type SearchFilters struct {
	Category string
	Location string
	MinPrice *float64
	MaxPrice *float64
}

// IsZero reports whether no filter is set.
func (f SearchFilters) IsZero() bool {
	return f.Category == "" && f.Location == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// SearchQuery is one application-level search request: free text plus
// structured filters and 1-based pagination.
type SearchQuery struct {
	Query    string
	Page     int
	PageSize int
	Filters  SearchFilters
}

// Normalize fills pagination defaults in place.
func (q *SearchQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
}

// Validate rejects malformed queries before any engine I/O.
func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return &ValidationError{Field: "query", Msg: "cannot be empty"}
	}
	if len(q.Query) > MaxQueryLength {
		return &ValidationError{Field: "query", Msg: fmt.Sprintf("too long: maximum %d characters, got %d", MaxQueryLength, len(q.Query))}
	}
	if q.Page < 1 {
		return &ValidationError{Field: "page", Msg: fmt.Sprintf("must be >= 1, got %d", q.Page)}
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return &ValidationError{Field: "page_size", Msg: fmt.Sprintf("must be between 1 and %d, got %d", MaxPageSize, q.PageSize)}
	}
	if err := q.Filters.Validate(); err != nil {
		return err
	}
	return nil
}

// Allowed characters for textual filter values: Unicode letters and digits,
// spaces, hyphens, underscores. Everything else is rejected rather than
// escaped twice.
var validFilterValue = regexp.MustCompile(`^[\p{L}\p{N}\s\-_]+$`)

// Validate rejects filter values that could not come from legitimate input.
func (f SearchFilters) Validate() error {
	for field, value := range map[string]string{"category": f.Category, "location": f.Location} {
		if value == "" {
			continue
		}
		if len(value) > 100 {
			return &ValidationError{Field: field, Msg: fmt.Sprintf("too long: maximum 100 characters, got %d", len(value))}
		}
		if !validFilterValue.MatchString(value) {
			return &ValidationError{Field: field, Msg: "contains invalid characters"}
		}
		for _, r := range value {
			if unicode.IsControl(r) {
				return &ValidationError{Field: field, Msg: "control characters not allowed"}
			}
		}
	}

	if f.MinPrice != nil && *f.MinPrice < 0 {
		return &ValidationError{Field: "min_price", Msg: "must not be negative"}
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return &ValidationError{Field: "max_price", Msg: "must not be negative"}
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return &ValidationError{Field: "min_price", Msg: "must not exceed max_price"}
	}
	return nil
}

// SearchHit is one ranked result: the matched document plus the engine's
// relevance score for it.
type SearchHit struct {
	Document SearchDocument `json:"document"`
	Score    float64        `json:"score"`
}

// SearchResult is the stable response envelope. The engine-native envelope
// never leaks past the gateway.
type SearchResult struct {
	Query      string      `json:"query"`
	TotalFound int64       `json:"total"`
	Page       int         `json:"page"`
	Hits       []SearchHit `json:"results"`
}

// EmptySearchResult is the degraded outcome used when the engine fails:
// zero matches on page 1, never an error to the caller.
func EmptySearchResult(query string) *SearchResult {
	return &SearchResult{
		Query:      query,
		TotalFound: 0,
		Page:       1,
		Hits:       []SearchHit{},
	}
}
