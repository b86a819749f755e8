package store

import (
	"context"

	"github.com/userbook/userbook/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Every method runs in its own transaction; no two calls share one.
// Implementations classify storage failures into the error kinds declared
// in this package, so callers never see driver-level error codes.
type UserStore interface {
	// Create saves a new user to the store and fills in the store-assigned
	// ID and timestamps on the passed record.
	// Returns ErrEmailExists if the email is already taken.
	// Returns ErrInvalidEntity if a required column constraint is violated.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update applies the full state of the supplied record to the stored
	// row keyed by ID, and refreshes the record's UpdatedAt from the store.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// DeleteByID removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteByEmail removes at most one user whose case-folded email matches
	// the given normalized email. Lookup and removal happen in a single
	// transaction. Returns ErrUserNotFound if no user matches.
	DeleteByEmail(ctx context.Context, email string) error

	// EmailExists reports whether a user with the given normalized email
	// exists. The read-only transaction commits either way.
	EmailExists(ctx context.Context, email string) (bool, error)
}
