package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxology/assistant-backend/internal/application/services"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

func TestVerificationService_Verify(t *testing.T) {
	ctx := context.Background()
	registered := &entities.User{
		ID:          42,
		FirstName:   "Maria",
		LastName:    "Lopez",
		DateOfBirth: time.Date(1985, time.March, 12, 0, 0, 0, 0, time.UTC),
		Email:       "maria@example.com",
		PhoneNumber: "+15550100",
	}

	t.Run("matches a registered user and returns their contact details", func(t *testing.T) {
		repo := &fakeUserRepo{user: registered}
		service := services.NewVerificationService(repo)

		identity, err := service.Verify(ctx, "maria", "LOPEZ", "03/12/1985")
		require.NoError(t, err)
		assert.Equal(t, int64(42), identity.UserID)
		assert.Equal(t, "maria@example.com", identity.Email)
		assert.Equal(t, "+15550100", identity.PhoneNumber)

		assert.Equal(t, "maria", repo.gotFirst)
		assert.Equal(t, "LOPEZ", repo.gotLast)
		assert.Equal(t, time.Date(1985, time.March, 12, 0, 0, 0, 0, time.UTC), repo.gotDOB)
	})

	t.Run("malformed date of birth is a validation failure", func(t *testing.T) {
		repo := &fakeUserRepo{user: registered}
		service := services.NewVerificationService(repo)

		identity, err := service.Verify(ctx, "Maria", "Lopez", "1985-03-12")
		require.Error(t, err)
		assert.Nil(t, identity)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("missing names are a validation failure", func(t *testing.T) {
		service := services.NewVerificationService(&fakeUserRepo{user: registered})

		_, err := service.Verify(ctx, "  ", "Lopez", "03/12/1985")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("no matching user stays a not found error", func(t *testing.T) {
		repo := &fakeUserRepo{err: apperrors.NewNotFoundError("no user matches")}
		service := services.NewVerificationService(repo)

		identity, err := service.Verify(ctx, "Ghost", "User", "01/01/1990")
		require.Error(t, err)
		assert.Nil(t, identity)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
