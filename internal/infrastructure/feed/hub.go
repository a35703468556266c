// Package feed fans full roster snapshots out to connected viewers.
//
// The hub turns the store's push notifications into cancellable,
// per-viewer subscriptions: every delivery is the complete roster, and
// tearing a subscription down is guaranteed to release its channel.
package feed

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/core/domain"
)

const subscriberBuffer = 8

// Event is one delivery on the roster feed: either a full snapshot or a
// feed error (loss of live updates, surfaced proactively to viewers).
type Event struct {
	Roster []domain.PersonnelRecord
	Err    error
}

// Hub maintains the set of live subscriptions and broadcasts every
// published snapshot to all of them.
type Hub struct {
	mu   sync.Mutex
	subs map[string]chan Event
	log  zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{subs: make(map[string]chan Event), log: log}
}

// Subscription is one viewer's handle on the feed. Events arrive on C;
// Unsubscribe releases the channel and is safe to call more than once.
type Subscription struct {
	ID string
	C  <-chan Event

	hub  *Hub
	once sync.Once
}

// Unsubscribe detaches the subscription from the hub and closes C.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { s.hub.drop(s.ID) })
}

// Subscribe registers a new viewer on the feed.
func (h *Hub) Subscribe() *Subscription {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return &Subscription{ID: id, C: ch, hub: h}
}

// Publish broadcasts a full roster snapshot to every subscriber.
func (h *Hub) Publish(snapshot []domain.PersonnelRecord) {
	h.broadcast(Event{Roster: snapshot})
}

// PublishError reports a feed failure to every subscriber.
func (h *Hub) PublishError(err error) {
	h.broadcast(Event{Err: err})
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// broadcast delivers ev to every subscriber without blocking. A
// subscriber whose buffer is full is dropped so one stalled viewer
// cannot hold up the fan-out.
func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn().Str("subscription_id", id).Msg("slow feed subscriber dropped")
			delete(h.subs, id)
			close(ch)
		}
	}
}

func (h *Hub) drop(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}
