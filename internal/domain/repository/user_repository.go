package repository

import (
	"context"

	"stayloop/internal/domain/entity"
)

// UserRepository defines the persistence operations for user accounts.
// Implementations return apperr kinds for caller-facing failures and plain
// errors for storage faults.
type UserRepository interface {
	// Authenticate verifies credentials and returns the public projection.
	// Unknown username and wrong password are indistinguishable to the caller.
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	// Register creates an account with a hashed password.
	Register(ctx context.Context, p entity.RegisterParams) (*entity.User, error)
	// GetAll lists every account ordered by username ascending.
	GetAll(ctx context.Context) ([]entity.User, error)
	// Get fetches an account by username together with its listings,
	// bookings, and conversations.
	Get(ctx context.Context, username string) (*entity.User, error)
	// Update applies a partial update; present fields only.
	Update(ctx context.Context, id int64, p entity.UpdateUserParams) (*entity.User, error)
	// Remove deletes an account by id.
	Remove(ctx context.Context, id int64) error
}
