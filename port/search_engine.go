package port

import (
	"context"

	"search-service/domain"
)

type SearchEngine interface {
	// EnsureIndex creates the index with its fixed schema if absent.
	// Idempotent; repeated or concurrent startups are safe.
	EnsureIndex(ctx context.Context) error
	// UpsertDocument replaces or inserts one document by id.
	UpsertDocument(ctx context.Context, doc domain.SearchDocument) error
	// DeleteDocument removes one document. Deleting an absent id yields
	// domain.ErrDocumentNotFound.
	DeleteDocument(ctx context.Context, id string) error
	// Search executes an engine query and reshapes the native response.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error)
	// RegisterSynonyms overwrites the engine-side synonym sets.
	RegisterSynonyms(ctx context.Context, synonyms map[string][]string) error
}
