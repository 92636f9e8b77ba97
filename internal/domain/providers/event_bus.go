package providers

import (
	"context"

	"github.com/voxology/assistant-backend/internal/domain/entities"
)

// EventChannelSearchResults is the channel search result sets are pushed on
const EventChannelSearchResults = "assistant:search:results"

// EventBus delivers search events to connected presentation surfaces.
// Publishing is best effort and timeout bounded; subscribers are display
// clients attached over SSE.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.SearchResultsEvent) error

	// Subscribe subscribes to events on a channel until ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchResultsEvent, error)

	// Close shuts down the bus and all subscriptions
	Close() error
}
