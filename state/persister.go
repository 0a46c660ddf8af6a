package state

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Persister when no state exists for a key.
var ErrNotFound = errors.New("state not found")

// Persister stores the state of admin sessions.
type Persister interface {
	Load(ctx context.Context, key string) (State, error)
	Save(ctx context.Context, key string, s State) error
	Delete(ctx context.Context, key string) error
}

// MemoryPersister keeps states in process memory.
type MemoryPersister struct {
	mu     sync.Mutex
	states map[string]State
}

// NewMemoryPersister returns an empty in memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{states: make(map[string]State)}
}

func (m *MemoryPersister) Load(_ context.Context, key string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[key]
	if !ok {
		return State{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryPersister) Save(_ context.Context, key string, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key] = s
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.states[key]; !ok {
		return ErrNotFound
	}
	delete(m.states, key)
	return nil
}
