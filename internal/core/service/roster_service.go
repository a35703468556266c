package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/core/domain"
	"github.com/staffboard/statusboard/internal/core/ports"
)

// ChangeNotifier announces that the personnel collection changed so
// every instance can push a fresh snapshot to its connected viewers.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context) error
}

// RosterService implements roster reads and availability updates.
type RosterService struct {
	repo     ports.RosterRepository
	notifier ChangeNotifier
	logger   zerolog.Logger
}

func NewRosterService(repo ports.RosterRepository, notifier ChangeNotifier, logger zerolog.Logger) *RosterService {
	return &RosterService{repo: repo, notifier: notifier, logger: logger}
}

// Snapshot returns the full roster in store order.
func (s *RosterService) Snapshot(ctx context.Context) ([]domain.PersonnelRecord, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus applies an availability change. The status is checked
// against the canonical enumeration before any write reaches the store.
// The local view is never mutated optimistically: viewers see the change
// only once the feed delivers the resulting snapshot.
func (s *RosterService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*ports.UpdateStatusResult, error) {
	status := domain.Status(input.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}

	if err := s.repo.UpdateStatus(ctx, input.RecordID, status); err != nil {
		s.logger.Error().Err(err).Str("record_id", input.RecordID).Msg("status update failed")
		return nil, err
	}

	if err := s.notifier.NotifyChanged(ctx); err != nil {
		// The write itself succeeded; losing one notification only
		// delays viewers until the next change.
		s.logger.Warn().Err(err).Msg("change notification failed")
	}

	s.logger.Info().
		Str("record_id", input.RecordID).
		Str("status", string(status)).
		Msg("status updated")

	return &ports.UpdateStatusResult{
		Message: fmt.Sprintf("Status updated for %s to %s.", input.DisplayName, status),
	}, nil
}
