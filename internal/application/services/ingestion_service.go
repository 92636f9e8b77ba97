package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/voxology/assistant-backend/internal/adapters/search"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

// defaultBatchSize is the upsert batch size for index writes
const defaultBatchSize = 100

// IngestionSummary reports what an indexing run accomplished
type IngestionSummary struct {
	RecordsRead     int `json:"records_read"`
	RecordsIndexed  int `json:"records_indexed"`
	RecordsSkipped  int `json:"records_skipped"`
	BatchesUpserted int `json:"batches_upserted"`
}

// IngestionService hydrates the provider catalog into the vector index.
// Each record is rendered to a deterministic description, embedded and
// upserted with its filterable metadata.
type IngestionService struct {
	embedder  providers.EmbeddingProvider
	index     repositories.ProviderIndexRepository
	batchSize int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(embedder providers.EmbeddingProvider, index repositories.ProviderIndexRepository, batchSize int) *IngestionService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &IngestionService{
		embedder:  embedder,
		index:     index,
		batchSize: batchSize,
	}
}

// IngestFile reads a JSON array of provider records from path and indexes
// them. Re-running is idempotent: upserts overwrite by id.
func (s *IngestionService) IngestFile(ctx context.Context, path string) (*IngestionSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider file: %w", err)
	}

	var records []*entities.Provider
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("provider file is not a JSON array of providers: %v", err))
	}

	return s.Ingest(ctx, records)
}

// Ingest embeds and upserts the given providers in fixed-size batches
func (s *IngestionService) Ingest(ctx context.Context, records []*entities.Provider) (*IngestionSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{}

	batch := make([]repositories.IndexedProvider, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.index.UpsertBatch(ctx, batch); err != nil {
			return apperrors.NewExternalError("failed to upsert provider batch", err)
		}
		summary.RecordsIndexed += len(batch)
		summary.BatchesUpserted++
		batch = batch[:0]
		return nil
	}

	for _, record := range records {
		summary.RecordsRead++

		if record == nil || record.ID == "" {
			summary.RecordsSkipped++
			logger.Warn().Int("position", summary.RecordsRead).Msg("skipping provider record without id")
			continue
		}

		description := search.RenderDescription(record)
		vector, err := s.embedder.Embed(ctx, description)
		if err != nil {
			return summary, apperrors.NewExternalError(fmt.Sprintf("failed to embed provider %s", record.ID), err)
		}

		batch = append(batch, repositories.IndexedProvider{
			ID:       record.ID,
			Vector:   vector,
			Metadata: search.FlattenMetadata(record),
		})

		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return summary, err
			}
		}
	}

	if err := flush(); err != nil {
		return summary, err
	}

	logger.Info().
		Int("records_read", summary.RecordsRead).
		Int("records_indexed", summary.RecordsIndexed).
		Int("records_skipped", summary.RecordsSkipped).
		Int("batches", summary.BatchesUpserted).
		Msg("provider catalog indexed")

	return summary, nil
}
