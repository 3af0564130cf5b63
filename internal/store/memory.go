// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Active boards are ephemeral: they live for the lifetime of the process
// and are never persisted (finished results are recorded elsewhere).
//
// Characteristics:
//   - Stores *session.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/johanneslumpe/typescriptle/internal/session"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the holding area for active game sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save adds or updates a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*session.Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex // guards sessions map
	sessions map[string]*session.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}
