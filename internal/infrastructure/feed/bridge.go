package feed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/core/domain"
)

// SnapshotSource loads the current roster from the store.
type SnapshotSource interface {
	ListAll(ctx context.Context) ([]domain.PersonnelRecord, error)
}

// Notifications is the stream of roster change signals (Redis pub/sub).
type Notifications interface {
	Listen(ctx context.Context, onChange func(context.Context)) error
}

// Bridge turns change signals into hub broadcasts: on every signal it
// reloads the full snapshot from the store and publishes it. Viewers
// therefore always reconcile against complete state, never deltas.
type Bridge struct {
	hub    *Hub
	source SnapshotSource
	notes  Notifications
	log    zerolog.Logger
}

func NewBridge(hub *Hub, source SnapshotSource, notes Notifications, log zerolog.Logger) *Bridge {
	return &Bridge{hub: hub, source: source, notes: notes, log: log}
}

// Run consumes change signals until ctx is cancelled. A snapshot reload
// failure is pushed to subscribers as a feed error rather than silently
// leaving them on stale state.
func (b *Bridge) Run(ctx context.Context) error {
	return b.notes.Listen(ctx, func(ctx context.Context) {
		snapshot, err := b.source.ListAll(ctx)
		if err != nil {
			b.log.Error().Err(err).Msg("snapshot reload failed")
			b.hub.PublishError(err)
			return
		}
		b.hub.Publish(snapshot)
	})
}
