package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/repositories"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FindByNameAndDOB retrieves the user whose names match case-insensitively
// and whose date of birth matches exactly. With multiple matches the lowest
// id wins so repeated lookups land on the same record.
func (a *UserAdapter) FindByNameAndDOB(ctx context.Context, firstName, lastName string, dateOfBirth time.Time) (*entities.User, error) {
	query, args, err := a.db.Select(
		"id", "first_name", "last_name", "date_of_birth",
		"email", "phone_number", "created_at",
	).From("users").
		Where(
			goqu.L("LOWER(first_name)").Eq(strings.ToLower(strings.TrimSpace(firstName))),
			goqu.L("LOWER(last_name)").Eq(strings.ToLower(strings.TrimSpace(lastName))),
			goqu.Ex{"date_of_birth": dateOfBirth.Format("2006-01-02")},
		).
		Order(goqu.I("id").Asc()).
		Limit(1).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user := &entities.User{}
	var phoneNumber sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.DateOfBirth,
		&user.Email,
		&phoneNumber,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no user matches the given name and date of birth")
		}
		return nil, apperrors.NewInternalError("failed to query user", err)
	}

	user.PhoneNumber = phoneNumber.String

	return user, nil
}
