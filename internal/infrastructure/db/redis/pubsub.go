package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const rosterChannel = "roster:changed"

// ChangeNotifier publishes roster change signals on a pub/sub channel so
// every service instance can refresh its connected viewers.
type ChangeNotifier struct {
	client *redis.Client
}

func NewChangeNotifier(client *redis.Client) *ChangeNotifier {
	return &ChangeNotifier{client: client}
}

// NotifyChanged publishes one change signal. The payload carries no data:
// receivers reload the full snapshot from the store.
func (n *ChangeNotifier) NotifyChanged(ctx context.Context) error {
	return n.client.Publish(ctx, rosterChannel, "1").Err()
}

// ChangeListener consumes roster change signals.
type ChangeListener struct {
	client *redis.Client
}

func NewChangeListener(client *redis.Client) *ChangeListener {
	return &ChangeListener{client: client}
}

// Listen invokes onChange for every published signal until ctx is
// cancelled. The subscription is torn down before Listen returns.
func (l *ChangeListener) Listen(ctx context.Context, onChange func(context.Context)) error {
	sub := l.client.Subscribe(ctx, rosterChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			onChange(ctx)
		}
	}
}
