package services

import (
	"context"
	"strings"
	"time"

	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

// dobLayout is the wire format callers supply the date of birth in
const dobLayout = "01/02/2006"

// VerificationService gates booking behind an identity check against the
// registered patient store.
type VerificationService struct {
	users repositories.UserRepository
}

// NewVerificationService creates a new verification service
func NewVerificationService(users repositories.UserRepository) *VerificationService {
	return &VerificationService{users: users}
}

// Verify matches the caller against a registered user by name and date of
// birth. Names compare case-insensitively, the date of birth exactly. A
// malformed date is a validation failure, distinct from "no such user".
func (s *VerificationService) Verify(ctx context.Context, firstName, lastName, dateOfBirth string) (*entities.VerifiedIdentity, error) {
	ctx, span := observability.StartSpan(ctx, "VerificationService.Verify")
	defer span.End()

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("first name and last name are required")
	}

	dob, err := time.Parse(dobLayout, strings.TrimSpace(dateOfBirth))
	if err != nil {
		return nil, apperrors.NewValidationError("date of birth must be in MM/DD/YYYY format")
	}

	user, err := s.users.FindByNameAndDOB(ctx, firstName, lastName, dob)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("user_id", user.ID).
		Msg("identity verified")

	return &entities.VerifiedIdentity{
		UserID:      user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}, nil
}
