package identity

import (
	"context"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *User) error

	// Update saves changes to an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail finds a user by (lower-cased) email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
