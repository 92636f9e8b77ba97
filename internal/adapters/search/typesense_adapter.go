package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
	tsclient "github.com/voxology/assistant-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements the provider vector index on Typesense. The
// embedding field carries the vector; all other fields are filterable
// metadata that double as the display-ready provider record.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.ProviderIndexRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the provider collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	collection := a.client.Collection()

	_, err := a.client.Client().Collection(collection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "embedding", Type: "float[]", NumDim: pointer.Int(providers.EmbeddingDimensions)},
			{Name: "specialty", Type: "string", Facet: pointer.True()},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "state", Type: "string", Facet: pointer.True()},
			{Name: "zip", Type: "string"},
			{Name: "accepting_new_patients", Type: "bool"},
			{Name: "board_certified", Type: "bool"},
			{Name: "years_experience", Type: "int32"},
			{Name: "rating", Type: "float"},
			{Name: "languages", Type: "string[]", Facet: pointer.True()},
			{Name: "insurance_accepted", Type: "string[]", Facet: pointer.True()},
			{Name: "full_name", Type: "string"},
			{Name: "first_name", Type: "string", Optional: pointer.True()},
			{Name: "last_name", Type: "string", Optional: pointer.True()},
			{Name: "phone", Type: "string", Optional: pointer.True()},
			{Name: "email", Type: "string", Optional: pointer.True()},
			{Name: "address_street", Type: "string", Optional: pointer.True()},
			{Name: "license_number", Type: "string", Optional: pointer.True()},
		},
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Reset drops the collection so a reindex starts clean
func (a *TypesenseAdapter) Reset(ctx context.Context) error {
	_, err := a.client.Client().Collection(a.client.Collection()).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	return nil
}

// UpsertBatch writes a batch of vectors + metadata. Upserts are idempotent by
// id: re-running overwrites prior vectors and metadata for the same record.
func (a *TypesenseAdapter) UpsertBatch(ctx context.Context, batch []repositories.IndexedProvider) error {
	collection := a.client.Collection()

	for _, item := range batch {
		document := make(map[string]interface{}, len(item.Metadata)+2)
		for k, v := range item.Metadata {
			document[k] = v
		}
		document["id"] = item.ID
		document["embedding"] = item.Vector

		if _, err := a.client.Client().Collection(collection).Documents().Upsert(ctx, document); err != nil {
			return fmt.Errorf("failed to upsert provider %s: %w", item.ID, err)
		}
	}

	return nil
}

// Query runs a top-k nearest-neighbor search restricted by the structured
// filters and maps the matches back to providers ranked by similarity.
func (a *TypesenseAdapter) Query(ctx context.Context, vector []float32, filters entities.SearchFilters, limit int) ([]*entities.Provider, error) {
	if limit <= 0 {
		limit = entities.DefaultSearchLimit
	}

	searchParams := &api.SearchCollectionParams{
		Q:             pointer.String("*"),
		QueryBy:       pointer.String("full_name"),
		VectorQuery:   pointer.String(vectorQuery(vector, limit)),
		PerPage:       pointer.Int(limit),
		ExcludeFields: pointer.String("embedding"),
	}

	if filterBy := BuildFilter(filters); filterBy != "" {
		searchParams.FilterBy = pointer.String(filterBy)
	}

	result, err := a.client.Client().Collection(a.client.Collection()).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider index: %w", err)
	}

	matches := []*entities.Provider{}
	if result.Hits == nil {
		return matches, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		matches = append(matches, providerFromDocument(*hit.Document))
	}

	return matches, nil
}

// vectorQuery renders the nearest-neighbor clause, e.g.
// "embedding:([0.12,0.34], k:5)".
func vectorQuery(vector []float32, k int) string {
	var sb strings.Builder
	sb.WriteString("embedding:([")
	for i, v := range vector {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteString("], k:")
	sb.WriteString(strconv.Itoa(k))
	sb.WriteString(")")
	return sb.String()
}
