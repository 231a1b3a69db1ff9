package usecase

import (
	"context"

	"search-service/domain"
	"search-service/logger"
	"search-service/port"
)

// SearchServicesUsecase translates an application-level query into an engine
// search. Engine failures degrade to an empty result set instead of failing
// the request: search is availability-critical and a transient engine blip
// must not take the page down. The failure is still logged at error
// severity.
type SearchServicesUsecase struct {
	searchEngine port.SearchEngine
}

func NewSearchServicesUsecase(searchEngine port.SearchEngine) *SearchServicesUsecase {
	return &SearchServicesUsecase{searchEngine: searchEngine}
}

func (u *SearchServicesUsecase) Execute(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result, err := u.searchEngine.Search(ctx, query)
	if err != nil {
		logger.Logger.Error("search degraded to empty result", "query", query.Query, "err", err)
		return domain.EmptySearchResult(query.Query), nil
	}

	return result, nil
}
