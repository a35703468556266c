package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/core/domain"
	"github.com/staffboard/statusboard/internal/core/ports"
)

// Seeder populates an empty personnel collection with the starter roster.
//
// Idempotency is enforced twice: a cheap emptiness check (so a manually
// populated collection is never touched) and an atomic marker claim in
// the store, which closes the race between two concurrent first loads.
type Seeder struct {
	repo     ports.RosterRepository
	notifier ChangeNotifier
	logger   zerolog.Logger
}

func NewSeeder(repo ports.RosterRepository, notifier ChangeNotifier, logger zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, notifier: notifier, logger: logger}
}

// SeedIfEmpty inserts the starter roster if the collection has no
// records and the seed guard is unclaimed. Each insert is an independent
// request; partial failure leaves the successful inserts in place and is
// reported as one aggregate error.
func (s *Seeder) SeedIfEmpty(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count personnel: %w", err)
	}
	if n > 0 {
		return nil
	}

	claimed, err := s.repo.ClaimSeedMarker(ctx)
	if err != nil {
		return fmt.Errorf("seed: claim marker: %w", err)
	}
	if !claimed {
		s.logger.Debug().Msg("seed marker already claimed, skipping")
		return nil
	}

	var errs []error
	inserted := 0
	for _, rec := range domain.StarterRoster {
		if err := s.repo.InsertStarter(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("insert %q: %w", rec.Name, err))
			continue
		}
		inserted++
	}
	if len(errs) > 0 {
		return fmt.Errorf("seed: inserted %d of %d starter records: %w",
			inserted, len(domain.StarterRoster), errors.Join(errs...))
	}

	s.logger.Info().Int("records", inserted).Msg("starter roster seeded")

	if err := s.notifier.NotifyChanged(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("change notification failed after seeding")
	}
	return nil
}
