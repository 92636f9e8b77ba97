package providers

import (
	"context"
)

// EmbeddingDimensions is the output size of the embedding model, treated as
// an opaque constant by everything except the index schema.
const EmbeddingDimensions = 1536

// EmbeddingProvider turns text into a fixed-length vector for similarity
// comparison
type EmbeddingProvider interface {
	// Embed returns the embedding for a single piece of text
	Embed(ctx context.Context, text string) ([]float32, error)
}
