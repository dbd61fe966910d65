// Package store is the client's single source of truth. Each domain owns a
// slice of State; asynchronous operations are Thunks that dispatch pending,
// fulfilled and rejected actions around one API call, and reducers fold
// those actions into the slices.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hungrynow/hungrynow/internal/api"
)

// Session supplies the API client for the current credential and changes
// the credential on login and logout. session.Manager implements it.
type Session interface {
	Client() *api.Client
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
}

// Listener receives every dispatched action together with the state after
// it was reduced.
type Listener func(Action, State)

// Store holds State. It is safe for concurrent use; reductions are
// serialized and listeners run on the dispatching goroutine after the lock
// is released.
type Store struct {
	session Session
	logger  *slog.Logger

	mu    sync.RWMutex
	state State

	subMu     sync.Mutex
	listeners map[int]Listener
	nextID    int

	flightMu sync.Mutex
	inFlight map[string]struct{}
}

// New creates an empty store.
func New(sess Session, logger *slog.Logger) *Store {
	return &Store{
		session:   sess,
		logger:    logger,
		listeners: make(map[int]Listener),
		inFlight:  make(map[string]struct{}),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch reduces a into the state and notifies listeners.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state.reduce(a)
	var snapshot State
	listeners := s.snapshotListeners()
	if len(listeners) > 0 {
		snapshot = s.state.clone()
	}
	s.mu.Unlock()

	actionsTotal.WithLabelValues(a.Type, phaseLabel(a.Phase)).Inc()

	for _, l := range listeners {
		l(a, snapshot)
	}
}

// Subscribe registers l and returns a function that removes it. All
// listeners see the same snapshot and must not modify it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) snapshotListeners() []Listener {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

// ClearMessages clears the error and success message of slice.
func (s *Store) ClearMessages(slice string) {
	s.Dispatch(ClearMessages(slice))
}

// Session returns the session the store's thunks run against.
func (s *Store) Session() Session {
	return s.session
}

func (s *Store) acquire(key string) bool {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Store) release(key string) {
	s.flightMu.Lock()
	delete(s.inFlight, key)
	s.flightMu.Unlock()
}
