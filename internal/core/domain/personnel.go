package domain

import (
	"errors"
	"strings"
	"time"
)

// Status represents the availability state of a staff member.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusBusy        Status = "Busy"
	StatusBreak       Status = "Break"
	StatusWithPatient Status = "With Patient"
	StatusUnavailable Status = "Unavailable"
	StatusOnLeave     Status = "On Leave"
	StatusRetired     Status = "Retired"
)

// AllStatuses lists every accepted availability state, in display order.
var AllStatuses = []Status{
	StatusAvailable,
	StatusBusy,
	StatusBreak,
	StatusWithPatient,
	StatusUnavailable,
	StatusOnLeave,
	StatusRetired,
}

var ErrRecordNotFound = errors.New("personnel record not found")
var ErrInvalidStatus = errors.New("invalid availability status")
var ErrForbidden = errors.New("access forbidden")
var ErrAlreadySeeded = errors.New("roster already seeded")

// IsValid reports whether s is a member of the canonical enumeration.
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DisplayClass derives the CSS class for a status, replacing spaces
// with dashes ("With Patient" → "status-With-Patient").
func (s Status) DisplayClass() string {
	return "status-" + strings.ReplaceAll(string(s), " ", "-")
}

// PersonnelRecord is one staff member's availability entry.
//
// LastUpdated is server-authoritative: it is written by the store at
// write time and never accepted from a client. A nil LastUpdated means
// the write is still in flight and viewers should render a placeholder.
type PersonnelRecord struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Name        string     `json:"name" bson:"name"`
	Specialty   string     `json:"specialty" bson:"specialty"`
	Status      Status     `json:"status" bson:"status"`
	LastUpdated *time.Time `json:"last_updated" bson:"last_updated,omitempty"`
}

// StarterRecord is a seed entry before the store assigns an id.
type StarterRecord struct {
	Name      string
	Specialty string
	Status    Status
}

// StarterRoster is the fixed roster inserted by the seeder into an
// empty collection. Insert order is immaterial.
var StarterRoster = []StarterRecord{
	{Name: "Dr. Sarah Smith", Specialty: "Cardiology", Status: StatusAvailable},
	{Name: "Dr. James Lee", Specialty: "Pediatrics", Status: StatusBusy},
	{Name: "Dr. Maria Garcia", Specialty: "Oncology", Status: StatusBreak},
	{Name: "Dr. David Chen", Specialty: "Neurology", Status: StatusWithPatient},
}
