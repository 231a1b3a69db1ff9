package port

import (
	"context"

	"search-service/domain"
)

type ServiceRepository interface {
	// GetServiceByID retrieves one active service. Absent or inactive rows
	// yield domain.ErrServiceNotFound.
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	// GetAllSynonyms retrieves every (word, synonym) pair for synchronization.
	GetAllSynonyms(ctx context.Context) ([]domain.SynonymPair, error)
}
