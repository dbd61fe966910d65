// Package repository defines the storage interfaces of the development
// backend's accounts and address books.
package repository

import (
	"context"
	"time"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// UserRecord is a stored account: the public profile plus credentials.
type UserRecord struct {
	domain.User
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create stores a new account. A duplicate email is an AlreadyExists
	// error.
	Create(ctx context.Context, u *UserRecord) error
	// GetByID returns the account or a NotFound error.
	GetByID(ctx context.Context, id string) (*UserRecord, error)
	// GetByEmail looks an account up by its lower-cased email.
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)
	// Update overwrites the profile and password hash of an account.
	Update(ctx context.Context, u *UserRecord) error
}

// AddressRepository defines persistence operations for address books.
// Implementations keep at most one default address per user: storing an
// address flagged as default clears the flag on every other address of
// that user atomically.
type AddressRepository interface {
	Create(ctx context.Context, userID string, a *domain.Address) error
	GetByID(ctx context.Context, userID, id string) (*domain.Address, error)
	// ListByUserID returns the addresses in creation order.
	ListByUserID(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, userID string, a *domain.Address) error
	Delete(ctx context.Context, userID, id string) error
}
