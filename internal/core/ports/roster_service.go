package ports

import (
	"context"

	"github.com/staffboard/statusboard/internal/core/domain"
)

// UpdateStatusInput carries a single availability change request.
type UpdateStatusInput struct {
	RecordID string
	// DisplayName is echoed back in the feedback message; the record
	// itself is addressed by RecordID only.
	DisplayName string
	Status      string
}

// UpdateStatusResult is returned on a successful availability change.
type UpdateStatusResult struct {
	// Message is the user-facing feedback line, e.g.
	// "Status updated for Dr. X to Busy."
	Message string
}

// RosterService defines use-case operations on the availability board.
type RosterService interface {
	// Snapshot returns the full current roster. Viewers always receive
	// complete snapshots, never deltas.
	Snapshot(ctx context.Context) ([]domain.PersonnelRecord, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*UpdateStatusResult, error)
}

// Seeder populates an empty personnel collection with the starter roster.
type Seeder interface {
	// SeedIfEmpty is idempotent: it inserts the starter roster if and
	// only if the collection is empty and the seed guard is unclaimed.
	SeedIfEmpty(ctx context.Context) error
}
