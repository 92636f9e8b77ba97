package entities

import (
	"time"
)

// SearchEventType identifies the kind of search event being pushed
type SearchEventType string

const (
	// SearchEventResults carries a fresh result set for display
	SearchEventResults SearchEventType = "search.results"
)

// SearchResultsEvent is the payload pushed to a connected presentation
// surface after a non-empty search. Delivery is best effort; the search
// outcome never depends on it.
type SearchResultsEvent struct {
	ID        string          `json:"id"`
	EventType SearchEventType `json:"event_type"`
	Query     string          `json:"query"`
	Providers []*Provider     `json:"providers"`
	Count     int             `json:"count"`
	Timestamp time.Time       `json:"timestamp"`
}
