package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxology/assistant-backend/internal/application/services"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

func catalogRecords(n int) []*entities.Provider {
	records := make([]*entities.Provider, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, &entities.Provider{
			ID:        string(rune('a'+i%26)) + "_prov",
			FullName:  "Dr. Test Provider",
			Specialty: "Cardiology",
		})
	}
	return records
}

func TestIngestionService_Ingest(t *testing.T) {
	ctx := context.Background()
	vector := []float32{0.5, 0.5}

	t.Run("embeds each record and upserts in batches", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{}
		service := services.NewIngestionService(embedder, index, 2)

		records := []*entities.Provider{
			{ID: "prov_001", FullName: "Dr. A"},
			{ID: "prov_002", FullName: "Dr. B"},
			{ID: "prov_003", FullName: "Dr. C"},
		}

		summary, err := service.Ingest(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.RecordsRead)
		assert.Equal(t, 3, summary.RecordsIndexed)
		assert.Equal(t, 0, summary.RecordsSkipped)
		assert.Equal(t, 2, summary.BatchesUpserted)

		require.Len(t, index.batches, 2)
		assert.Len(t, index.batches[0], 2)
		assert.Len(t, index.batches[1], 1)
		assert.Equal(t, "prov_001", index.batches[0][0].ID)
		assert.Equal(t, vector, index.batches[0][0].Vector)
		assert.Equal(t, "prov_001", index.batches[0][0].Metadata["id"])

		// One embedding call per record, fed the rendered description
		require.Len(t, embedder.texts, 3)
		assert.Contains(t, embedder.texts[0], "Dr. A")
	})

	t.Run("records without an id are skipped, not fatal", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{}
		service := services.NewIngestionService(embedder, index, 10)

		records := []*entities.Provider{
			{ID: "prov_001"},
			{ID: ""},
			nil,
			{ID: "prov_002"},
		}

		summary, err := service.Ingest(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, 4, summary.RecordsRead)
		assert.Equal(t, 2, summary.RecordsIndexed)
		assert.Equal(t, 2, summary.RecordsSkipped)
	})

	t.Run("embedding failure stops the run with an upstream error", func(t *testing.T) {
		embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
		service := services.NewIngestionService(embedder, &fakeIndex{}, 10)

		summary, err := service.Ingest(ctx, catalogRecords(3))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
		assert.Equal(t, 0, summary.RecordsIndexed)
	})

	t.Run("upsert failure surfaces as an upstream error", func(t *testing.T) {
		embedder := &fakeEmbedder{vector: vector}
		index := &fakeIndex{upsertErr: errors.New("typesense down")}
		service := services.NewIngestionService(embedder, index, 1)

		_, err := service.Ingest(ctx, catalogRecords(1))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
	})
}

func TestIngestionService_IngestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("reads a JSON array from disk", func(t *testing.T) {
		records := []*entities.Provider{{ID: "prov_001", FullName: "Dr. File"}}
		data, err := json.Marshal(records)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "providers.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		service := services.NewIngestionService(&fakeEmbedder{vector: []float32{1}}, &fakeIndex{}, 10)

		summary, err := service.IngestFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.RecordsIndexed)
	})

	t.Run("non-array JSON is a validation failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "providers.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

		service := services.NewIngestionService(&fakeEmbedder{}, &fakeIndex{}, 10)

		_, err := service.IngestFile(ctx, path)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("missing file is an error", func(t *testing.T) {
		service := services.NewIngestionService(&fakeEmbedder{}, &fakeIndex{}, 10)

		_, err := service.IngestFile(ctx, filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})
}
