package listing

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/collabhub/admin-console/state"
	"go.vocdoni.io/dvote/log"
)

// ModalKind names a detail view.
type ModalKind string

const (
	ModalProfile      ModalKind = "profile"
	ModalVideos       ModalKind = "videos"
	ModalCampaign     ModalKind = "campaign"
	ModalCollabVideos ModalKind = "collab-videos"
)

// ParseModalKind returns the modal named s and whether it can be opened on
// rows of tab.
func ParseModalKind(tab state.Tab, s string) (ModalKind, bool) {
	k := ModalKind(s)
	switch tab {
	case state.TabCreators:
		return k, k == ModalProfile || k == ModalVideos
	case state.TabCollaborations:
		return k, k == ModalCampaign || k == ModalCollabVideos
	}
	return k, false
}

// Modal is the open detail view, if any.
type Modal struct {
	Kind     ModalKind
	Tab      state.Tab
	RecordID string
}

// Session is the listing state of one signed-in admin. It outlives requests:
// filters, pagination, in-flight markers and pending alerts stay here between
// page loads, while the Store keeps what must survive a restart.
type Session struct {
	Store *state.Store

	mu             sync.Mutex
	generations    map[state.Tab]uint64
	creatorFilters CreatorFilters
	brandFilters   BrandFilters
	pages          map[state.Tab]Pagination
	cities         []string
	payingID       string
	videoLoadingID string
	modal          *Modal
	alerts         []string
	lastSeen       time.Time
}

// NewSession creates the listing session backed by store.
func NewSession(store *state.Store) *Session {
	s := &Session{Store: store}
	s.reset()
	return s
}

// reset restores every ephemeral field to its default. Callers hold mu or
// own the session exclusively.
func (s *Session) reset() {
	if s.generations == nil {
		s.generations = map[state.Tab]uint64{}
	}
	// fetches started before the reset must not commit after it
	for tab := range s.generations {
		s.generations[tab]++
	}
	s.creatorFilters = DefaultCreatorFilters()
	s.brandFilters = DefaultBrandFilters()
	s.pages = map[state.Tab]Pagination{}
	s.cities = nil
	s.payingID = ""
	s.videoLoadingID = ""
	s.modal = nil
	s.lastSeen = time.Now()
}

// begin starts a fetch of tab and returns its generation. setup runs under
// the session lock before the generation is taken.
func (s *Session) begin(tab state.Tab, setup func(*Session)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if setup != nil {
		setup(s)
	}
	s.generations[tab]++
	return s.generations[tab]
}

// resetFilters restores the default filters of tab, rewinds it to the
// first page and supersedes the fetches of tab still in flight.
func (s *Session) resetFilters(tab state.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch tab {
	case state.TabCreators:
		s.creatorFilters = DefaultCreatorFilters()
	case state.TabBrands:
		s.brandFilters = DefaultBrandFilters()
	}
	if p, ok := s.pages[tab]; ok && p.TotalPages > 0 {
		p.Page = 1
		s.pages[tab] = p
	}
	s.generations[tab]++
}

// isCurrent reports whether gen is the latest fetch of tab.
func (s *Session) isCurrent(tab state.Tab, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[tab] == gen
}

// apply commits the result of the fetch gen of tab. The result is dropped
// with ErrSuperseded when a newer fetch of the same tab was started. The
// generation check and the in memory commit happen under the lock so two
// fetches can never commit out of order; the state is persisted after the
// lock is released.
func (s *Session) apply(ctx context.Context, tab state.Tab, gen uint64, commit func(*Session) state.Action) error {
	s.mu.Lock()
	if s.generations[tab] != gen {
		current := s.generations[tab]
		s.mu.Unlock()
		log.Debugw("discarding superseded fetch", "tab", tab, "generation", gen, "current", current)
		return ErrSuperseded
	}
	persist := s.Store.Commit(commit(s))
	s.mu.Unlock()
	// persistence failures are logged by the store and the in memory state
	// stays valid
	_ = persist(ctx)
	return nil
}

// Filters returns the current creator and brand filters.
func (s *Session) Filters() (CreatorFilters, BrandFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creatorFilters, s.brandFilters
}

// Pagination returns the pagination of tab.
func (s *Session) Pagination(tab state.Tab) Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[tab]
}

// Cities returns the city options of the last successful creators fetch.
func (s *Session) Cities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cities)
}

// PayingID returns the collaboration whose payment is in flight, if any.
func (s *Session) PayingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payingID
}

// VideoLoadingID returns the video whose moderation is in flight, if any.
func (s *Session) VideoLoadingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoLoadingID
}

// claimPayment marks id as the in-flight payment. It fails when another
// payment is already in flight, leaving it untouched.
func (s *Session) claimPayment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payingID != "" {
		return false
	}
	s.payingID = id
	return true
}

// releasePayment clears the in-flight payment if it is still id.
func (s *Session) releasePayment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payingID == id {
		s.payingID = ""
	}
}

func (s *Session) claimVideo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoLoadingID != "" {
		return false
	}
	s.videoLoadingID = id
	return true
}

func (s *Session) releaseVideo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoLoadingID == id {
		s.videoLoadingID = ""
	}
}

// Modal returns the open detail view.
func (s *Session) Modal() (Modal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == nil {
		return Modal{}, false
	}
	return *s.modal, true
}

// Alert queues a message for the next rendered page.
func (s *Session) Alert(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, msg)
}

// TakeAlerts returns and clears the queued messages.
func (s *Session) TakeAlerts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := s.alerts
	s.alerts = nil
	return alerts
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry holds the listing sessions of every signed-in admin, keyed by the
// hash of their backend session token.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	persister state.Persister
}

// NewRegistry creates a registry whose stores persist through persister.
func NewRegistry(persister state.Persister) *Registry {
	if persister == nil {
		persister = state.NewMemoryPersister()
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		persister: persister,
	}
}

// Get returns the session for key, creating it and loading its persisted
// state when needed.
func (r *Registry) Get(ctx context.Context, key string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[key]
	r.mu.Unlock()
	if ok {
		s.touch()
		return s, nil
	}

	store := state.NewStore(key, r.persister)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	created := NewSession(store)

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		return s, nil
	}
	r.sessions[key] = created
	return created, nil
}

// Drop forgets the session for key. Its persisted state is left to the
// caller.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}

// Sweep forgets sessions idle for longer than maxIdle and returns how many
// were dropped. Their persisted state stays available for the next Get.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for key, s := range r.sessions {
		if s.idleSince(now) > maxIdle {
			delete(r.sessions, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
