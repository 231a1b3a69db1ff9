package usecase

import (
	"context"

	"search-service/port"
)

// DeleteServiceUsecase removes one document from the index. Deleting an id
// that was never indexed surfaces the not-found outcome; callers decide
// whether that is a 404 or a vacuous success.
type DeleteServiceUsecase struct {
	searchEngine port.SearchEngine
}

func NewDeleteServiceUsecase(searchEngine port.SearchEngine) *DeleteServiceUsecase {
	return &DeleteServiceUsecase{searchEngine: searchEngine}
}

func (u *DeleteServiceUsecase) Execute(ctx context.Context, id string) error {
	if err := validateServiceID(id); err != nil {
		return err
	}
	return u.searchEngine.DeleteDocument(ctx, id)
}
