package repositories

import (
	"context"
	"time"

	"github.com/voxology/assistant-backend/internal/domain/entities"
)

// UserRepository defines read access to the identity store. This service
// never writes identity records.
type UserRepository interface {
	// FindByNameAndDOB retrieves the user matching the given names
	// (case-insensitive exact match) and exact date of birth. When more than
	// one row matches, the lowest id wins so repeat calls are deterministic.
	// Returns a not found error when no row matches.
	FindByNameAndDOB(ctx context.Context, firstName, lastName string, dateOfBirth time.Time) (*entities.User, error)
}
