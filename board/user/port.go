package user

import (
	"context"

	"github.com/easilyhq/easily/pkg/kernel"
)

// Repository persists accounts. Email lookups are case-insensitive; Create
// must reject duplicate emails without touching the store.
type Repository interface {
	// Create stores a new user, assigning an ID. A user with the same
	// normalized email is a conflict and leaves the store unchanged.
	Create(ctx context.Context, u *User) (*User, error)

	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)

	// FindByEmail retrieves a user by normalized email
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
}

// PasswordService hashes and verifies account passwords
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}
