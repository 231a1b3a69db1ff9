package usecase

import (
	"context"
	"os"
	"testing"

	"search-service/domain"
	"search-service/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type mockServiceRepository struct {
	service  *domain.Service
	getErr   error
	pairs    []domain.SynonymPair
	pairsErr error

	requestedIDs []string
}

func (m *mockServiceRepository) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	m.requestedIDs = append(m.requestedIDs, id)
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.service, nil
}

func (m *mockServiceRepository) GetAllSynonyms(ctx context.Context) ([]domain.SynonymPair, error) {
	if m.pairsErr != nil {
		return nil, m.pairsErr
	}
	return m.pairs, nil
}

type mockSearchEngine struct {
	ensureErr    error
	upsertErr    error
	deleteErr    error
	searchResult *domain.SearchResult
	searchErr    error
	synonymsErr  error

	upserted    []domain.SearchDocument
	deleted     []string
	lastQuery   domain.SearchQuery
	synonymMaps []map[string][]string
}

func (m *mockSearchEngine) EnsureIndex(ctx context.Context) error {
	return m.ensureErr
}

func (m *mockSearchEngine) UpsertDocument(ctx context.Context, doc domain.SearchDocument) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, doc)
	return nil
}

func (m *mockSearchEngine) DeleteDocument(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSearchEngine) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResult, nil
}

func (m *mockSearchEngine) RegisterSynonyms(ctx context.Context, synonyms map[string][]string) error {
	if m.synonymsErr != nil {
		return m.synonymsErr
	}
	m.synonymMaps = append(m.synonymMaps, synonyms)
	return nil
}
