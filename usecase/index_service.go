package usecase

import (
	"context"
	"unicode"

	"search-service/domain"
	"search-service/port"
)

// IndexServiceUsecase indexes one service by id: fetch the authoritative
// row, project it into the engine document, upsert. Repeated execution with
// unchanged source data is a no-op in effect.
type IndexServiceUsecase struct {
	serviceRepo  port.ServiceRepository
	searchEngine port.SearchEngine
}

type IndexResult struct {
	ServiceID string
	Document  domain.SearchDocument
}

func NewIndexServiceUsecase(serviceRepo port.ServiceRepository, searchEngine port.SearchEngine) *IndexServiceUsecase {
	return &IndexServiceUsecase{
		serviceRepo:  serviceRepo,
		searchEngine: searchEngine,
	}
}

func (u *IndexServiceUsecase) Execute(ctx context.Context, id string) (*IndexResult, error) {
	if err := validateServiceID(id); err != nil {
		return nil, err
	}

	service, err := u.serviceRepo.GetServiceByID(ctx, id)
	if err != nil {
		// ErrServiceNotFound passes through untouched so the caller can
		// answer 404 instead of 500.
		return nil, err
	}

	doc := domain.NewSearchDocument(service)

	if err := u.searchEngine.UpsertDocument(ctx, doc); err != nil {
		return nil, err
	}

	return &IndexResult{
		ServiceID: doc.ID,
		Document:  doc,
	}, nil
}

// validateServiceID accepts the store's opaque key space: UUIDs and integer
// tokens both pass, anything with whitespace or control characters does not.
func validateServiceID(id string) error {
	if id == "" {
		return &domain.ValidationError{Field: "id", Msg: "cannot be empty"}
	}
	if len(id) > 64 {
		return &domain.ValidationError{Field: "id", Msg: "too long"}
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return &domain.ValidationError{Field: "id", Msg: "contains invalid characters"}
		}
	}
	return nil
}
