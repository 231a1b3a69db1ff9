package usecase

import (
	"context"
	"strings"

	"search-service/domain"
	"search-service/logger"
	"search-service/port"
)

const (
	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 10
)

// SuggestServicesUsecase backs the typeahead box: prefix search, distinct
// titles, best-effort. Engine errors yield an empty suggestion list, never
// an error response.
type SuggestServicesUsecase struct {
	searchEngine port.SearchEngine
}

type SuggestResult struct {
	Query       string
	Suggestions []string
}

func NewSuggestServicesUsecase(searchEngine port.SearchEngine) *SuggestServicesUsecase {
	return &SuggestServicesUsecase{searchEngine: searchEngine}
}

func (u *SuggestServicesUsecase) Execute(ctx context.Context, prefix string, limit int) (*SuggestResult, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, &domain.ValidationError{Field: "query", Msg: "cannot be empty"}
	}
	if limit < 1 {
		limit = DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		limit = MaxSuggestLimit
	}

	// Over-fetch: several hits can collapse into one title after dedupe.
	result, err := u.searchEngine.Search(ctx, domain.SearchQuery{
		Query:    prefix,
		Page:     1,
		PageSize: limit * 2,
	})
	if err != nil {
		logger.Logger.Error("suggest degraded to empty list", "prefix", prefix, "err", err)
		return &SuggestResult{Query: prefix, Suggestions: []string{}}, nil
	}

	// Deduplicate by case-folded title, keeping the first (highest-ranked)
	// raw title per fold.
	seen := make(map[string]struct{}, len(result.Hits))
	suggestions := make([]string, 0, limit)
	for _, hit := range result.Hits {
		title := hit.Document.Title
		if title == "" {
			continue
		}
		folded := strings.ToLower(title)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		suggestions = append(suggestions, title)
		if len(suggestions) >= limit {
			break
		}
	}

	return &SuggestResult{Query: prefix, Suggestions: suggestions}, nil
}
