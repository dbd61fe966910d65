package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hungrynow/hungrynow/internal/api"
)

// Credential is the bearer token handed to api.New.
type Credential = api.Credential

// ClientFactory builds an api.Client bound to a credential.
type ClientFactory func(Credential) (*api.Client, error)

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The backend is the only party that verifies tokens; the client only needs
// to know when to stop using one.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Manager owns the current credential and the client built for it. Login
// and Logout replace the client; callers fetch it with Client for every
// request rather than holding on to one.
type Manager struct {
	store     TokenStore
	newClient ClientFactory
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.RWMutex
	cred      Credential
	expiresAt time.Time
	client    *api.Client
}

// NewManager creates a manager with an anonymous client.
func NewManager(store TokenStore, factory ClientFactory, logger *slog.Logger) (*Manager, error) {
	client, err := factory(Credential{})
	if err != nil {
		return nil, fmt.Errorf("build anonymous client: %w", err)
	}
	return &Manager{
		store:     store,
		newClient: factory,
		logger:    logger,
		now:       time.Now,
		client:    client,
	}, nil
}

// Client returns the client for the current credential.
func (m *Manager) Client() *api.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

func (m *Manager) Credential() Credential {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred
}

// ExpiresAt is zero when the token carries no expiry or nobody is signed in.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiresAt
}

// Authenticated reports whether a non-expired token is held.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.cred.Valid() {
		return false
	}
	return m.expiresAt.IsZero() || m.now().Before(m.expiresAt)
}

// Restore loads a persisted token. It reports false when there is none or
// it has expired; an expired token is removed from the store.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	token, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session token: %w", err)
	}

	exp, _ := TokenExpiry(token)
	if !exp.IsZero() && !m.now().Before(exp) {
		m.logger.InfoContext(ctx, "persisted session expired", slog.Time("expires_at", exp))
		if err := m.store.Clear(ctx); err != nil {
			return false, fmt.Errorf("clear expired session: %w", err)
		}
		return false, nil
	}

	if err := m.set(Credential{Token: token}, exp); err != nil {
		return false, err
	}
	return true, nil
}

// Login persists token and switches to a client that sends it.
func (m *Manager) Login(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty session token")
	}
	exp, _ := TokenExpiry(token)
	if err := m.store.Save(ctx, token, exp); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return m.set(Credential{Token: token}, exp)
}

// Logout forgets the token locally and in the store. The in-memory
// credential is dropped even when the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	setErr := m.set(Credential{}, time.Time{})
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return setErr
}

func (m *Manager) set(cred Credential, exp time.Time) error {
	client, err := m.newClient(cred)
	if err != nil {
		return fmt.Errorf("build api client: %w", err)
	}
	m.mu.Lock()
	m.cred = cred
	m.expiresAt = exp
	m.client = client
	m.mu.Unlock()
	return nil
}
