package gateway

import (
	"context"
	"errors"

	"search-service/domain"
	"search-service/driver"
)

type SearchDriver interface {
	EnsureIndex(ctx context.Context) error
	UpsertDocument(ctx context.Context, doc driver.SearchDocumentDriver) error
	DeleteDocument(ctx context.Context, id string) error
	Search(ctx context.Context, query string, filter string, page, pageSize int64) (*driver.SearchResultDriver, error)
	RegisterSynonyms(ctx context.Context, synonyms map[string][]string) error
}

type SearchEngineGateway struct {
	driver SearchDriver
}

func NewSearchEngineGateway(driver SearchDriver) *SearchEngineGateway {
	return &SearchEngineGateway{driver: driver}
}

func (g *SearchEngineGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.SearchEngineError{
			Op:  "EnsureIndex",
			Err: err.Error(),
		}
	}
	return nil
}

// UpsertDocument rejects documents missing their required fields before any
// engine I/O happens.
func (g *SearchEngineGateway) UpsertDocument(ctx context.Context, doc domain.SearchDocument) error {
	if doc.ID == "" {
		return &domain.ValidationError{Field: "id", Msg: "cannot be empty"}
	}
	if doc.Title == "" {
		return &domain.ValidationError{Field: "title", Msg: "cannot be empty"}
	}

	if err := g.driver.UpsertDocument(ctx, toDriverDocument(doc)); err != nil {
		return &domain.SearchEngineError{
			Op:  "UpsertDocument",
			Err: err.Error(),
		}
	}
	return nil
}

// DeleteDocument translates the driver's missing-document signal into the
// domain not-found outcome; callers treat it as delete-succeeded-vacuously.
func (g *SearchEngineGateway) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ValidationError{Field: "id", Msg: "cannot be empty"}
	}

	err := g.driver.DeleteDocument(ctx, id)
	if err != nil {
		if errors.Is(err, driver.ErrDocumentMissing) {
			return domain.ErrDocumentNotFound
		}
		return &domain.SearchEngineError{
			Op:  "DeleteDocument",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *SearchEngineGateway) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	filter := driver.BuildFilter(driver.FilterParams{
		Category: query.Filters.Category,
		Location: query.Filters.Location,
		MinPrice: query.Filters.MinPrice,
		MaxPrice: query.Filters.MaxPrice,
	})

	result, err := g.driver.Search(ctx, query.Query, filter, int64(query.Page), int64(query.PageSize))
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "Search",
			Err: err.Error(),
		}
	}

	hits := make([]domain.SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, domain.SearchHit{
			Document: toDomainDocument(hit.Document),
			Score:    hit.Score,
		})
	}

	return &domain.SearchResult{
		Query:      query.Query,
		TotalFound: result.TotalFound,
		Page:       int(result.Page),
		Hits:       hits,
	}, nil
}

func (g *SearchEngineGateway) RegisterSynonyms(ctx context.Context, synonyms map[string][]string) error {
	if err := g.driver.RegisterSynonyms(ctx, synonyms); err != nil {
		return &domain.SearchEngineError{
			Op:  "RegisterSynonyms",
			Err: err.Error(),
		}
	}
	return nil
}

func toDriverDocument(doc domain.SearchDocument) driver.SearchDocumentDriver {
	return driver.SearchDocumentDriver{
		ID:             doc.ID,
		Title:          doc.Title,
		Description:    doc.Description,
		Category:       doc.Category,
		Location:       doc.Location,
		Capacity:       doc.Capacity,
		TechnicalSpecs: doc.TechnicalSpecs,
		SupplierID:     doc.SupplierID,
		SupplierName:   doc.SupplierName,
		PricePerDay:    doc.PricePerDay,
		CreatedAt:      doc.CreatedAt,
	}
}

func toDomainDocument(doc driver.SearchDocumentDriver) domain.SearchDocument {
	return domain.SearchDocument{
		ID:             doc.ID,
		Title:          doc.Title,
		Description:    doc.Description,
		Category:       doc.Category,
		Location:       doc.Location,
		Capacity:       doc.Capacity,
		TechnicalSpecs: doc.TechnicalSpecs,
		SupplierID:     doc.SupplierID,
		SupplierName:   doc.SupplierName,
		PricePerDay:    doc.PricePerDay,
		CreatedAt:      doc.CreatedAt,
	}
}
