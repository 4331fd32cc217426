// Package store implements the reactive dashboard cache: the in-memory,
// single-instance view of the remote entities, kept consistent by full
// collection loads and incremental change-event reconciliation.
package store

import (
	"sync"

	"github.com/travelops/console-service/internal/domain/models"
)

// EntityKind routes a reconciliation event to the collection it addresses.
type EntityKind string

const (
	// EntityTraveler addresses the traveler collection.
	EntityTraveler EntityKind = "traveler"
	// EntityConversation addresses the conversation collection.
	EntityConversation EntityKind = "conversation"
	// EntityFeedback addresses the feedback collection.
	EntityFeedback EntityKind = "feedback"
)

// ChangeKind represents the kind of reconciliation change.
type ChangeKind string

const (
	// ChangeInsert prepends the row to the target collection.
	ChangeInsert ChangeKind = "insert"
	// ChangeUpdate replaces the row with the matching id in place.
	ChangeUpdate ChangeKind = "update"
	// ChangeDelete removes the row with the matching id.
	ChangeDelete ChangeKind = "delete"
)

// Event is a validated reconciliation event. Exactly one of the typed row
// fields is set, matching Entity. ID is the affected row's id and is always
// required; events without it are dropped before reaching the store.
type Event struct {
	Kind   ChangeKind
	Entity EntityKind
	ID     string

	Conversation *models.Conversation
	Feedback     *models.Feedback
	Traveler     *models.Traveler
}

// Store holds the authoritative in-memory dashboard state. Readers take
// snapshots; the load, reconciliation and auth paths are the only writers.
// An epoch counter guards in-flight asynchronous results: ClearAll advances
// the epoch, and any result issued under an earlier epoch is discarded.
type Store struct {
	mu    sync.RWMutex
	epoch uint64

	identity *models.Identity
	profile  *models.Profile

	metrics       *models.Metrics
	travelers     []models.Traveler
	conversations []models.Conversation
	feedback      []models.Feedback

	selectedTravelerID string
	lastError          string
	loading            bool

	// teardown closes the active change subscriptions. Registered after
	// LoadAll establishes them, invoked by ClearAll.
	teardown func()
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Epoch returns the current identity epoch. Asynchronous operations capture
// it when issued and pass it back when applying their result.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// SetIdentity replaces the identity and profile as an atomic pair. Readers
// never observe one without the other; passing nil for either clears both.
func (s *Store) SetIdentity(identity *models.Identity, profile *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if identity == nil || profile == nil {
		s.identity = nil
		s.profile = nil
		return
	}
	s.identity = identity
	s.profile = profile
}

// Authenticated reports whether an identity pair is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// SetTravelers replaces the traveler collection wholesale. The replacement is
// discarded when the epoch is stale.
func (s *Store) SetTravelers(epoch uint64, travelers []models.Traveler) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.travelers = travelers
	return true
}

// SetConversations replaces the conversation collection wholesale. The
// replacement is discarded when the epoch is stale.
func (s *Store) SetConversations(epoch uint64, conversations []models.Conversation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.conversations = conversations
	return true
}

// SetFeedback replaces the feedback collection wholesale. The replacement is
// discarded when the epoch is stale.
func (s *Store) SetFeedback(epoch uint64, feedback []models.Feedback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.feedback = feedback
	return true
}

// SetMetrics replaces the metrics snapshot wholesale. The replacement is
// discarded when the epoch is stale.
func (s *Store) SetMetrics(epoch uint64, metrics *models.Metrics) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.metrics = metrics
	return true
}

// Reconcile applies a single change event to the collection addressed by the
// event's entity kind. Events issued under a stale epoch, or missing a usable
// id, are dropped. It returns whether the event was applied.
//
// Insert prepends unconditionally, even when a row with the same id is
// already present; update replaces in place and is dropped when the id is
// absent; delete is a no-op when the id is absent. Unrelated elements are
// never reordered and other collections are never touched.
func (s *Store) Reconcile(epoch uint64, ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	if ev.ID == "" {
		return false
	}

	switch ev.Entity {
	case EntityConversation:
		if ev.Kind != ChangeDelete && ev.Conversation == nil {
			return false
		}
		s.conversations = apply(s.conversations, ev.Kind, ev.ID, ev.Conversation,
			func(c models.Conversation) string { return c.ID })
	case EntityFeedback:
		if ev.Kind != ChangeDelete && ev.Feedback == nil {
			return false
		}
		s.feedback = apply(s.feedback, ev.Kind, ev.ID, ev.Feedback,
			func(f models.Feedback) string { return f.ID })
	case EntityTraveler:
		if ev.Kind != ChangeDelete && ev.Traveler == nil {
			return false
		}
		s.travelers = apply(s.travelers, ev.Kind, ev.ID, ev.Traveler,
			func(t models.Traveler) string { return t.ID })
	default:
		return false
	}
	return true
}

// SelectTraveler records the selected traveler id. The id is not validated
// against the loaded collection; selection may go stale across reloads and
// readers must tolerate that. An empty id clears the selection.
func (s *Store) SelectTraveler(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTravelerID = id
}

// SetError records a failure in the shared error slot, overwriting any
// earlier unread error.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// SetErrorAt records a failure in the shared error slot only when issued
// under the current epoch, so a late failure from before a reset cannot
// surface afterwards.
func (s *Store) SetErrorAt(epoch uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.lastError = msg
	return true
}

// ClearError empties the shared error slot. Called at the start of each new
// user action.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// SetLoading records whether a load operation is in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetTeardown registers the callback that closes the active change
// subscriptions. A previously registered callback is replaced.
func (s *Store) SetTeardown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown = fn
}

// SetTeardownAt registers the teardown only if the given epoch is still
// current, so subscriptions established concurrently with a reset are never
// attached to the post-reset state. Returns false when the epoch went stale;
// the caller still owns the subscriptions and must close them itself.
func (s *Store) SetTeardownAt(epoch uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.teardown = fn
	return true
}

// CloseSubscriptions runs and clears the registered teardown without
// touching cache state. Used on shutdown, where the signed-in session must
// survive a restart.
func (s *Store) CloseSubscriptions() {
	s.mu.Lock()
	teardown := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	if teardown != nil {
		teardown()
	}
}

// ClearAll resets every collection and identity field, advances the epoch so
// in-flight results from before the reset are discarded, and tears down the
// active subscriptions. Safe to call when no subscription exists.
func (s *Store) ClearAll() {
	s.mu.Lock()
	teardown := s.teardown
	s.teardown = nil
	s.identity = nil
	s.profile = nil
	s.metrics = nil
	s.travelers = nil
	s.conversations = nil
	s.feedback = nil
	s.selectedTravelerID = ""
	s.lastError = ""
	s.loading = false
	s.epoch++
	s.mu.Unlock()

	// Run outside the lock: teardown may block on network shutdown.
	if teardown != nil {
		teardown()
	}
}

// Snapshot is a consistent read-only copy of the store state.
type Snapshot struct {
	Epoch uint64

	Identity *models.Identity
	Profile  *models.Profile

	Metrics       *models.Metrics
	Travelers     []models.Traveler
	Conversations []models.Conversation
	Feedback      []models.Feedback

	SelectedTravelerID string
	LastError          string
	Loading            bool
}

// Snapshot returns a copy of the current state. Collection slices are copied
// so later reconciliation cannot mutate a snapshot a reader still holds.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Epoch:              s.epoch,
		SelectedTravelerID: s.selectedTravelerID,
		LastError:          s.lastError,
		Loading:            s.loading,
	}
	if s.identity != nil {
		identity := *s.identity
		profile := *s.profile
		snap.Identity = &identity
		snap.Profile = &profile
	}
	if s.metrics != nil {
		metrics := *s.metrics
		snap.Metrics = &metrics
	}
	snap.Travelers = append([]models.Traveler(nil), s.travelers...)
	snap.Conversations = append([]models.Conversation(nil), s.conversations...)
	snap.Feedback = append([]models.Feedback(nil), s.feedback...)

	return snap
}
