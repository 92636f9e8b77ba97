package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxology/assistant-backend/internal/application/services"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	vector := []float32{0.1, 0.2, 0.3}
	providersFound := []*entities.Provider{
		{ID: "prov_001", FullName: "Dr. Sarah Chen", Specialty: "Cardiology"},
		{ID: "prov_002", FullName: "Dr. Amir Patel", Specialty: "Cardiology"},
	}

	t.Run("returns ranked matches and pushes them to the display", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{matches: providersFound}
		bus := &fakeBus{}
		service := services.NewSearchService(embedder, index, bus, nil)

		query := entities.SearchQuery{
			Query:   "heart doctor in Austin",
			Filters: entities.SearchFilters{Specialty: strPtr("Cardiology")},
		}

		result, err := service.Search(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.Len(t, result.Providers, 2)
		assert.Equal(t, []string{"heart doctor in Austin"}, embedder.texts)
		assert.Equal(t, vector, index.gotVector)
		assert.Equal(t, entities.DefaultSearchLimit, index.gotLimit)

		require.Len(t, bus.published, 1)
		assert.Equal(t, "heart doctor in Austin", bus.published[0].Query)
		assert.Equal(t, 2, bus.published[0].Count)
		assert.NotEmpty(t, bus.published[0].ID)
	})

	t.Run("empty result set is a normal outcome without a push", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{matches: []*entities.Provider{}}
		bus := &fakeBus{}
		service := services.NewSearchService(embedder, index, bus, nil)

		result, err := service.Search(ctx, entities.SearchQuery{Query: "unicorn specialist"})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Count)
		assert.Empty(t, result.Providers)
		assert.NotEmpty(t, result.Message)
		assert.Empty(t, bus.published)
	})

	t.Run("embedding failure surfaces as an upstream error", func(t *testing.T) {
		embedder := &fakeEmbedder{err: errors.New("rate limited")}
		service := services.NewSearchService(embedder, &fakeIndex{}, nil, nil)

		result, err := service.Search(ctx, entities.SearchQuery{Query: "anything"})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
	})

	t.Run("index failure surfaces as an upstream error", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{queryErr: errors.New("connection refused")}
		service := services.NewSearchService(embedder, index, nil, nil)

		_, err := service.Search(ctx, entities.SearchQuery{Query: "anything"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
	})

	t.Run("publish failure never fails the search", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{matches: providersFound}
		bus := &fakeBus{publishErr: errors.New("redis down")}
		service := services.NewSearchService(embedder, index, bus, nil)

		result, err := service.Search(ctx, entities.SearchQuery{Query: "heart doctor"})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("caller limit is forwarded to the index", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{matches: providersFound}
		service := services.NewSearchService(embedder, index, nil, nil)

		_, err := service.Search(ctx, entities.SearchQuery{Query: "heart doctor", Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, index.gotLimit)
	})
}
