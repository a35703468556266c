package handler

import (
	"time"

	"github.com/staffboard/statusboard/internal/core/domain"
)

// updateStatusRequest is the body of PATCH /api/roster/:id/status.
// DisplayName is echoed back in the feedback line only.
type updateStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
}

// recordView is the wire shape of one personnel record. LastUpdated is
// null while a write is still in flight server-side; viewers render a
// placeholder ("Updating…") rather than treating that as an error.
type recordView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Specialty   string     `json:"specialty"`
	Status      string     `json:"status"`
	StatusClass string     `json:"status_class"`
	LastUpdated *time.Time `json:"last_updated"`
}

// rosterView is a full roster snapshot in store order, plus the set of
// statuses a viewer may pick from (one action button per value).
type rosterView struct {
	Roster   []recordView `json:"roster"`
	Statuses []string     `json:"statuses"`
}

func toRecordView(r domain.PersonnelRecord) recordView {
	return recordView{
		ID:          r.ID,
		Name:        r.Name,
		Specialty:   r.Specialty,
		Status:      string(r.Status),
		StatusClass: r.Status.DisplayClass(),
		LastUpdated: r.LastUpdated,
	}
}

func toRosterView(records []domain.PersonnelRecord) rosterView {
	views := make([]recordView, 0, len(records))
	for _, r := range records {
		views = append(views, toRecordView(r))
	}

	statuses := make([]string, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		statuses = append(statuses, string(s))
	}

	return rosterView{Roster: views, Statuses: statuses}
}
