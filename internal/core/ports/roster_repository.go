package ports

import (
	"context"

	"github.com/staffboard/statusboard/internal/core/domain"
)

// RosterRepository defines persistence operations for personnel records.
//
// The store owns record timestamps: UpdateStatus and InsertStarter set
// last_updated from the store's clock, never from a caller-supplied value.
type RosterRepository interface {
	// ListAll returns the complete roster in natural store order.
	// No client-side sort is applied anywhere downstream.
	ListAll(ctx context.Context) ([]domain.PersonnelRecord, error)
	Count(ctx context.Context) (int64, error)
	// UpdateStatus sets the record's status and refreshes last_updated
	// from the server clock. Returns domain.ErrRecordNotFound when no
	// record has the given id.
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	InsertStarter(ctx context.Context, rec domain.StarterRecord) error
	// ClaimSeedMarker atomically claims the one-shot seeding guard.
	// It reports true for exactly one caller ever; concurrent and
	// subsequent callers observe false.
	ClaimSeedMarker(ctx context.Context) (bool, error)
}
