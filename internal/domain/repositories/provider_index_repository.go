package repositories

import (
	"context"

	"github.com/voxology/assistant-backend/internal/domain/entities"
)

// IndexedProvider pairs a provider's embedding vector with its filterable
// metadata document for upsert into the vector index.
type IndexedProvider struct {
	ID       string
	Vector   []float32
	Metadata map[string]interface{}
}

// ProviderIndexRepository defines the vector index operations the search
// engine and the catalog indexer depend on.
type ProviderIndexRepository interface {
	// InitSchema ensures the index collection exists
	InitSchema(ctx context.Context) error

	// Reset deletes the collection so a reindex starts clean
	Reset(ctx context.Context) error

	// UpsertBatch writes a batch of vectors + metadata, idempotent by id
	UpsertBatch(ctx context.Context, batch []IndexedProvider) error

	// Query runs a top-k nearest-neighbor search restricted by filters and
	// returns display-ready providers ranked by similarity
	Query(ctx context.Context, vector []float32, filters entities.SearchFilters, limit int) ([]*entities.Provider, error)
}
