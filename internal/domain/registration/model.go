package registration

import (
	"errors"
	"time"
)

// Registration kinds. A pendaftar row is either a club membership
// application or an activity participation application.
const (
	KindMember   = "anggota"
	KindActivity = "kegiatan"
)

// Stored statuses. Assigned pending on creation, moved exactly once to
// accepted or rejected by an admin; terminal after that.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Derived-only statuses. Never stored by the backend; produced by the
// reconciler for rendering.
const (
	StatusNotRegistered  = "not_registered"
	StatusNeedMembership = "need_membership"
	StatusCanRegister    = "can_register"
)

// Domain errors
var (
	ErrInvalidKind      = errors.New("kind must be 'anggota' or 'kegiatan'")
	ErrInvalidStatus    = errors.New("status must be 'pending', 'accepted' or 'rejected'")
	ErrActivityRequired = errors.New("activity id is required for a kegiatan registration")
	ErrAlreadyDecided   = errors.New("registration has already been decided")
	ErrInvalidDecision  = errors.New("decision must be 'accepted' or 'rejected'")
	ErrClubRequired     = errors.New("club id is required")
)

// Registration is one applicant's request for club membership or
// activity participation, as returned by the backend. Field tags match
// the pendaftar wire format.
type Registration struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	ClubID     int       `json:"ukm_id"`
	ActivityID int       `json:"kegiatan_id,omitempty"`
	Kind       string    `json:"type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at,omitzero"`

	// Denormalized display fields some endpoints attach.
	UserName     string `json:"user_nama,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	StudentID    string `json:"nim,omitempty"`
	Faculty      string `json:"fakultas,omitempty"`
	ClubName     string `json:"ukm_nama,omitempty"`
	ActivityName string `json:"kegiatan_nama,omitempty"`
	ChatGroup    string `json:"link_wa,omitempty"`
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: a kegiatan registration always carries an activity id
func (r *Registration) Validate() error {
	if r.ClubID == 0 {
		return ErrClubRequired
	}
	if r.Kind != KindMember && r.Kind != KindActivity {
		return ErrInvalidKind
	}
	if r.Kind == KindActivity && r.ActivityID == 0 {
		return ErrActivityRequired
	}
	if r.Status != StatusPending && r.Status != StatusAccepted && r.Status != StatusRejected {
		return ErrInvalidStatus
	}
	return nil
}

// IsDecided returns true once an admin has accepted or rejected the
// registration. Decided registrations are terminal.
// INVARIANT: Status field is not mutated
func (r *Registration) IsDecided() bool {
	return r.Status == StatusAccepted || r.Status == StatusRejected
}

// Decide moves a pending registration to accepted or rejected.
// PRE: Registration is pending; decision is accepted or rejected
// POST: Status is set to the decision
func (r *Registration) Decide(decision string) error {
	if decision != StatusAccepted && decision != StatusRejected {
		return ErrInvalidDecision
	}
	if r.IsDecided() {
		return ErrAlreadyDecided
	}
	r.Status = decision
	return nil
}
