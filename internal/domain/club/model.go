package club

import (
	"errors"
	"strings"
	"time"

	"siuportal/internal/domain/report"
)

// Max length constants for admin-editable fields.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrNameRequired        = errors.New("club name cannot be empty")
	ErrNameTooLong         = errors.New("club name cannot exceed 100 characters")
	ErrDescriptionRequired = errors.New("club description cannot be empty")
	ErrDescriptionTooLong  = errors.New("club description cannot exceed 2000 characters")
)

// Club is a UKM record as returned by the backend, with its member
// roster, activities and reports embedded. Field tags match the wire
// format.
type Club struct {
	ID          int            `json:"id"`
	Name        string         `json:"nama"`
	Description string         `json:"deskripsi"`
	ImageURL    string         `json:"gambar,omitempty"`
	ChatGroup   string         `json:"wa_group,omitempty"`
	Members     []MemberEntry  `json:"anggota,omitempty"`
	Activities  []Activity     `json:"kegiatan,omitempty"`
	Reports     []report.Entry `json:"laporan,omitempty"`
}

// MemberEntry is a denormalized roster snapshot attached to a club.
// It is display data, not a registration.
type MemberEntry struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"nama"`
	StudentID string `json:"nim"`
	RoleTitle string `json:"jabatan,omitempty"`
}

// Activity is a kegiatan owned by exactly one club.
type Activity struct {
	ID          int       `json:"id"`
	Name        string    `json:"nama"`
	Description string    `json:"deskripsi,omitempty"`
	Date        time.Time `json:"tanggal,omitzero"`
	ChatGroup   string    `json:"link_wa,omitempty"`
}

// Validate checks admin-submitted club data before it is sent to the
// backend.
// PRE: Club struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(c.Description) == "" {
		return ErrDescriptionRequired
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Activity lookup by id.
// POST: returns the activity and true, or zero value and false
func (c *Club) FindActivity(activityID int) (Activity, bool) {
	for _, a := range c.Activities {
		if a.ID == activityID {
			return a, true
		}
	}
	return Activity{}, false
}

// HasMember reports whether a student id appears on the roster snapshot.
// INVARIANT: Members slice is not mutated
func (c *Club) HasMember(studentID string) bool {
	if studentID == "" {
		return false
	}
	for _, m := range c.Members {
		if m.StudentID == studentID {
			return true
		}
	}
	return false
}

// Validate checks admin-submitted activity data.
// POST: Returns error if validation fails, nil otherwise
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("activity name cannot be empty")
	}
	if len(a.Name) > MaxNameLength {
		return errors.New("activity name cannot exceed 100 characters")
	}
	return nil
}

// Validate checks admin-submitted roster data.
// POST: Returns error if validation fails, nil otherwise
func (m *MemberEntry) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("member name cannot be empty")
	}
	if strings.TrimSpace(m.StudentID) == "" {
		return errors.New("member student id cannot be empty")
	}
	return nil
}
