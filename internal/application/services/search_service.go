package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

// publishTimeout bounds the best-effort push to the display surface
const publishTimeout = 5 * time.Second

// SearchService runs the hybrid provider search: semantic ranking over the
// vector index restricted by structured filters.
type SearchService struct {
	embedder providers.EmbeddingProvider
	index    repositories.ProviderIndexRepository
	bus      providers.EventBus
	metrics  *observability.Metrics
}

// NewSearchService creates a new search service. The event bus and metrics
// are optional; without a bus results are simply not pushed to displays.
func NewSearchService(embedder providers.EmbeddingProvider, index repositories.ProviderIndexRepository, bus providers.EventBus, metrics *observability.Metrics) *SearchService {
	return &SearchService{
		embedder: embedder,
		index:    index,
		bus:      bus,
		metrics:  metrics,
	}
}

// Search embeds the query, applies the structured filters and returns the
// top matches ranked by similarity. An empty result set is a normal outcome.
func (s *SearchService) Search(ctx context.Context, query entities.SearchQuery) (*entities.SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	vector, err := s.embedder.Embed(ctx, query.Query)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to embed search query", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = entities.DefaultSearchLimit
	}

	matches, err := s.index.Query(ctx, vector, query.Filters, limit)
	if err != nil {
		return nil, apperrors.NewExternalError("provider search failed", err)
	}

	observability.RecordSearchMetric(ctx, s.metrics, len(matches))

	result := &entities.SearchResult{
		Providers: matches,
		Count:     len(matches),
	}
	if len(matches) == 0 {
		result.Message = "No providers matched your search. Try broadening the criteria."
		return result, nil
	}
	result.Message = fmt.Sprintf("Found %d matching provider(s).", len(matches))

	// Push to any attached display. Failure never affects the search outcome.
	if s.bus != nil {
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		event := &entities.SearchResultsEvent{
			ID:        uuid.New().String(),
			EventType: entities.SearchEventResults,
			Query:     query.Query,
			Providers: matches,
			Count:     len(matches),
			Timestamp: time.Now().UTC(),
		}
		if err := s.bus.Publish(publishCtx, providers.EventChannelSearchResults, event); err != nil {
			logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to push search results to display")
		}
	}

	return result, nil
}
