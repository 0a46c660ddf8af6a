// Package state holds the console's application state for one admin: the
// session, the last fetched collections and the active tab. State changes
// only through Reduce, and a Store persists every new state so it survives a
// restart of the console. Filters and pagination are not part of State.
package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.vocdoni.io/dvote/log"
)

// State is the persisted application state of an admin session.
type State struct {
	Session        Session         `json:"session" bson:"session"`
	Creators       []Creator       `json:"creators" bson:"creators"`
	Brands         []Brand         `json:"brands" bson:"brands"`
	Collaborations []Collaboration `json:"collaborations" bson:"collaborations"`
	ActiveTab      Tab             `json:"activeTab" bson:"activeTab"`
}

// Initial returns the state of a console that nobody has used yet.
func Initial() State {
	return State{ActiveTab: TabCreators}
}

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

// Login marks the session as authenticated by user.
type Login struct{ User User }

// Logout clears the session and every cached collection.
type Logout struct{}

// SetCreators replaces the creators collection.
type SetCreators struct{ Creators []Creator }

// SetBrands replaces the brands collection.
type SetBrands struct{ Brands []Brand }

// SetCollaborations replaces the collaborations collection.
type SetCollaborations struct{ Collaborations []Collaboration }

// SetActiveTab changes the selected tab.
type SetActiveTab struct{ Tab Tab }

func (Login) isAction()             {}
func (Logout) isAction()            {}
func (SetCreators) isAction()       {}
func (SetBrands) isAction()         {}
func (SetCollaborations) isAction() {}
func (SetActiveTab) isAction()      {}

// Reduce returns the state that results from applying a to s. It never
// modifies s and collections are always fully replaced, never appended to.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Login:
		s.Session = Session{Authenticated: true, User: a.User}
	case Logout:
		tab := s.ActiveTab
		s = Initial()
		if tab != "" {
			s.ActiveTab = tab
		}
	case SetCreators:
		s.Creators = slices.Clone(a.Creators)
	case SetBrands:
		s.Brands = slices.Clone(a.Brands)
	case SetCollaborations:
		s.Collaborations = slices.Clone(a.Collaborations)
	case SetActiveTab:
		if _, ok := ParseTab(string(a.Tab)); ok {
			s.ActiveTab = a.Tab
		}
	}
	return s
}

// Creator returns the creator with the given id from the current list.
func (s State) Creator(id string) (Creator, bool) {
	for _, c := range s.Creators {
		if c.ID == id {
			return c, true
		}
	}
	return Creator{}, false
}

// Brand returns the brand with the given id from the current list.
func (s State) Brand(id string) (Brand, bool) {
	for _, b := range s.Brands {
		if b.ID == id {
			return b, true
		}
	}
	return Brand{}, false
}

// Collaboration returns the collaboration with the given id.
func (s State) Collaboration(id string) (Collaboration, bool) {
	for _, c := range s.Collaborations {
		if c.ID == id {
			return c, true
		}
	}
	return Collaboration{}, false
}

// Store owns the state of one admin session and persists it after every
// dispatch.
type Store struct {
	mu        sync.RWMutex
	key       string
	state     State
	persister Persister

	// seq numbers every committed action, saved is the last one persisted
	seq       uint64
	persistMu sync.Mutex
	saved     uint64
}

// NewStore creates a store for the session identified by key. A nil
// persister keeps the state in memory only.
func NewStore(key string, persister Persister) *Store {
	if persister == nil {
		persister = NewMemoryPersister()
	}
	return &Store{
		key:       key,
		state:     Initial(),
		persister: persister,
	}
}

// Key returns the session key the store persists under.
func (st *Store) Key() string {
	return st.key
}

// Load replaces the in memory state with the persisted one, if any.
func (st *Store) Load(ctx context.Context) error {
	s, err := st.persister.Load(ctx, st.key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load state %s: %w", st.key, err)
	}
	st.mu.Lock()
	st.state = s
	st.mu.Unlock()
	return nil
}

// State returns a snapshot of the current state.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Dispatch applies a and persists the result. A persistence failure is
// returned but the in memory state keeps the new value.
func (st *Store) Dispatch(ctx context.Context, a Action) error {
	return st.Commit(a)(ctx)
}

// Commit applies a to the in memory state and returns the function that
// persists the result. Callers that hold their own locks while committing
// can run it once those are released. A persist function whose commit was
// already overtaken by a newer persisted one does nothing.
func (st *Store) Commit(a Action) func(context.Context) error {
	st.mu.Lock()
	st.state = Reduce(st.state, a)
	st.seq++
	seq, snapshot := st.seq, st.state
	st.mu.Unlock()

	_, logout := a.(Logout)
	return func(ctx context.Context) error {
		st.persistMu.Lock()
		defer st.persistMu.Unlock()
		if seq <= st.saved {
			return nil
		}
		st.saved = seq
		if logout {
			if err := st.persister.Delete(ctx, st.key); err != nil && !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("delete state %s: %w", st.key, err)
			}
			return nil
		}
		if err := st.persister.Save(ctx, st.key, snapshot); err != nil {
			log.Warnw("failed to persist console state", "key", st.key, "error", err)
			return fmt.Errorf("save state %s: %w", st.key, err)
		}
		return nil
	}
}
