// Package memory implements the repositories in process memory. It backs
// the development server when no database is configured.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository"
	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
)

// UserRepository implements repository.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]repository.UserRecord
	byEmail map[string]string
}

// NewUserRepository creates an empty user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]repository.UserRecord),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, u *repository.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, ok := r.byEmail[email]; ok {
		return apperrors.AlreadyExists("user", "email", u.Email)
	}
	r.byID[u.ID] = cloneUser(*u)
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*repository.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*repository.UserRecord, error) {
	r.mu.RLock()
	id, ok := r.byEmail[strings.ToLower(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("user", email)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Update(_ context.Context, u *repository.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; !ok {
		return apperrors.NotFound("user", u.ID)
	}
	r.byID[u.ID] = cloneUser(*u)
	return nil
}

func cloneUser(u repository.UserRecord) repository.UserRecord {
	u.Addresses = slices.Clone(u.Addresses)
	return u
}

// AddressRepository implements repository.AddressRepository. A single lock
// covers every address book, so clearing the previous default and storing
// the new one happen together.
type AddressRepository struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Address
}

// NewAddressRepository creates an empty address repository.
func NewAddressRepository() *AddressRepository {
	return &AddressRepository{byUser: make(map[string][]domain.Address)}
}

func (r *AddressRepository) Create(_ context.Context, userID string, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.byUser[userID]
	if a.IsDefault {
		clearDefaults(book, "")
	}
	r.byUser[userID] = append(book, *a)
	return nil
}

func (r *AddressRepository) GetByID(_ context.Context, userID, id string) (*domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := indexOf(r.byUser[userID], id)
	if i < 0 {
		return nil, apperrors.NotFound("address", id)
	}
	a := r.byUser[userID][i]
	return &a, nil
}

func (r *AddressRepository) ListByUserID(_ context.Context, userID string) ([]domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.byUser[userID])
	if out == nil {
		out = []domain.Address{}
	}
	return out, nil
}

func (r *AddressRepository) Update(_ context.Context, userID string, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.byUser[userID]
	i := indexOf(book, a.ID)
	if i < 0 {
		return apperrors.NotFound("address", a.ID)
	}
	if a.IsDefault {
		clearDefaults(book, a.ID)
	}
	book[i] = *a
	return nil
}

func (r *AddressRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.byUser[userID]
	i := indexOf(book, id)
	if i < 0 {
		return apperrors.NotFound("address", id)
	}
	r.byUser[userID] = slices.Delete(book, i, i+1)
	return nil
}

func indexOf(book []domain.Address, id string) int {
	return slices.IndexFunc(book, func(a domain.Address) bool { return a.ID == id })
}

func clearDefaults(book []domain.Address, except string) {
	for i := range book {
		if book[i].ID != except {
			book[i].IsDefault = false
		}
	}
}
