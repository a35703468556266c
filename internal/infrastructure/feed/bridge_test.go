package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/core/domain"
)

type stubSource struct {
	mu      sync.Mutex
	records []domain.PersonnelRecord
	err     error
}

func (s *stubSource) ListAll(_ context.Context) ([]domain.PersonnelRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSource) set(records []domain.PersonnelRecord, err error) {
	s.mu.Lock()
	s.records, s.err = records, err
	s.mu.Unlock()
}

type stubNotifications struct {
	signals chan struct{}
}

func (n *stubNotifications) Listen(ctx context.Context, onChange func(context.Context)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-n.signals:
			onChange(ctx)
		}
	}
}

func TestBridge_ReloadsSnapshotOnSignal(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	source := &stubSource{}
	source.set([]domain.PersonnelRecord{{ID: "doc1", Name: "Dr. X", Status: domain.StatusBusy}}, nil)
	notes := &stubNotifications{signals: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewBridge(hub, source, notes, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- bridge.Run(ctx) }()

	sub := hub.Subscribe()
	defer sub.Unsubscribe()

	notes.signals <- struct{}{}
	select {
	case ev := <-sub.C:
		if ev.Err != nil || len(ev.Roster) != 1 || ev.Roster[0].Status != domain.StatusBusy {
			t.Fatalf("expected reloaded snapshot, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for snapshot")
	}

	// Reload failures surface as feed errors, not silence.
	loadErr := errors.New("store unavailable")
	source.set(nil, loadErr)
	notes.signals <- struct{}{}
	select {
	case ev := <-sub.C:
		if !errors.Is(ev.Err, loadErr) {
			t.Fatalf("expected feed error, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for feed error")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("bridge did not stop on cancellation")
	}
}
