package gateway

import (
	"context"

	"search-service/domain"
	"search-service/driver"
)

type ServiceDriver interface {
	GetServiceByID(ctx context.Context, id string) (*driver.ServiceRow, error)
	GetAllSynonyms(ctx context.Context) ([]driver.SynonymRow, error)
}

type ServiceRepositoryGateway struct {
	driver ServiceDriver
}

func NewServiceRepositoryGateway(driver ServiceDriver) *ServiceRepositoryGateway {
	return &ServiceRepositoryGateway{driver: driver}
}

// GetServiceByID translates the driver row into the domain entity. An
// absent or inactive row becomes domain.ErrServiceNotFound; infrastructure
// failures become RepositoryError so callers can tell the two apart.
func (g *ServiceRepositoryGateway) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	row, err := g.driver.GetServiceByID(ctx, id)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetServiceByID",
			Err: err.Error(),
		}
	}
	if row == nil {
		return nil, domain.ErrServiceNotFound
	}

	service, err := domain.NewService(
		row.ID,
		row.Title,
		row.Description,
		row.Category,
		row.Location,
		row.Capacity,
		row.TechnicalSpecs,
		row.SupplierID,
		row.SupplierName,
		row.PricePerDay,
		row.CreatedAt,
	)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetServiceByID",
			Err: "failed to convert service to domain: id=" + row.ID + ", " + err.Error(),
		}
	}

	return service, nil
}

func (g *ServiceRepositoryGateway) GetAllSynonyms(ctx context.Context) ([]domain.SynonymPair, error) {
	rows, err := g.driver.GetAllSynonyms(ctx)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetAllSynonyms",
			Err: err.Error(),
		}
	}

	pairs := make([]domain.SynonymPair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, domain.SynonymPair{Word: row.Word, Synonym: row.Synonym})
	}
	return pairs, nil
}
