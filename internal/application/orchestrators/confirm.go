package orchestrators

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingAction is a destructive operation waiting for its second
// click. The portal never executes accept, reject or delete on the
// first request.
type PendingAction struct {
	ID        string
	Kind      string
	TargetID  int
	ClubID    int // owning club, for targets addressed under /ukm/{id}
	Summary   string
	CreatedAt time.Time
}

// Action kinds held by the confirmation store.
const (
	ActionAcceptRegistration = "accept_registration"
	ActionRejectRegistration = "reject_registration"
	ActionDeleteClub         = "delete_club"
	ActionDeleteActivity     = "delete_activity"
	ActionRemoveMember       = "remove_member"
)

var ErrConfirmationExpired = errors.New("confirmation expired or unknown")

// ConfirmationStore holds pending actions in memory. Entries expire
// after the TTL so an abandoned dialog cannot be replayed later.
type ConfirmationStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]PendingAction
	clock   func() time.Time
}

// NewConfirmationStore creates a store with the given TTL.
func NewConfirmationStore(ttl time.Duration) *ConfirmationStore {
	return &ConfirmationStore{
		ttl:     ttl,
		pending: make(map[string]PendingAction),
		clock:   time.Now,
	}
}

// RequestAction records an action and returns its confirmation id.
// POST: The action can be claimed exactly once before the TTL passes
func (cs *ConfirmationStore) RequestAction(kind string, targetID int, summary string) PendingAction {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.sweepLocked()

	action := PendingAction{
		ID:        uuid.New().String(),
		Kind:      kind,
		TargetID:  targetID,
		Summary:   summary,
		CreatedAt: cs.clock(),
	}
	cs.pending[action.ID] = action
	return action
}

// RequestNestedAction records an action on a target that lives under
// a club, keeping the owning club id for the eventual backend call.
func (cs *ConfirmationStore) RequestNestedAction(kind string, clubID, targetID int, summary string) PendingAction {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.sweepLocked()

	action := PendingAction{
		ID:        uuid.New().String(),
		Kind:      kind,
		TargetID:  targetID,
		ClubID:    clubID,
		Summary:   summary,
		CreatedAt: cs.clock(),
	}
	cs.pending[action.ID] = action
	return action
}

// Peek returns a pending action without claiming it, for rendering the
// confirmation page.
func (cs *ConfirmationStore) Peek(id string) (PendingAction, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	action, ok := cs.pending[id]
	if !ok || cs.expiredLocked(action) {
		return PendingAction{}, ErrConfirmationExpired
	}
	return action, nil
}

// Confirm claims a pending action. A second confirm with the same id
// fails.
// POST: The action is removed from the store
func (cs *ConfirmationStore) Confirm(id string) (PendingAction, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	action, ok := cs.pending[id]
	if !ok || cs.expiredLocked(action) {
		delete(cs.pending, id)
		return PendingAction{}, ErrConfirmationExpired
	}
	delete(cs.pending, id)
	return action, nil
}

// Cancel drops a pending action. Cancelling an unknown id is not an
// error.
func (cs *ConfirmationStore) Cancel(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.pending, id)
}

func (cs *ConfirmationStore) expiredLocked(action PendingAction) bool {
	return cs.clock().Sub(action.CreatedAt) > cs.ttl
}

// sweepLocked drops expired entries. Called with cs.mu held.
func (cs *ConfirmationStore) sweepLocked() {
	for id, action := range cs.pending {
		if cs.expiredLocked(action) {
			delete(cs.pending, id)
		}
	}
}
