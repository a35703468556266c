package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffboard/statusboard/internal/core/domain"
	"github.com/staffboard/statusboard/internal/core/ports"
)

type stubRosterRepo struct {
	records       []domain.PersonnelRecord
	updateErr     error
	updated       []struct {
		id     string
		status domain.Status
	}
	inserted      []domain.StarterRecord
	insertErrFor  map[string]error
	markerClaimed bool
}

func newStubRosterRepo() *stubRosterRepo {
	return &stubRosterRepo{insertErrFor: make(map[string]error)}
}

func (r *stubRosterRepo) ListAll(_ context.Context) ([]domain.PersonnelRecord, error) {
	return r.records, nil
}

func (r *stubRosterRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *stubRosterRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.records {
		if r.records[i].ID == id {
			now := time.Now().UTC()
			r.records[i].Status = status
			r.records[i].LastUpdated = &now
			r.updated = append(r.updated, struct {
				id     string
				status domain.Status
			}{id, status})
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (r *stubRosterRepo) InsertStarter(_ context.Context, rec domain.StarterRecord) error {
	if err := r.insertErrFor[rec.Name]; err != nil {
		return err
	}
	r.inserted = append(r.inserted, rec)
	now := time.Now().UTC()
	r.records = append(r.records, domain.PersonnelRecord{
		ID:          rec.Name,
		Name:        rec.Name,
		Specialty:   rec.Specialty,
		Status:      rec.Status,
		LastUpdated: &now,
	})
	return nil
}

func (r *stubRosterRepo) ClaimSeedMarker(_ context.Context) (bool, error) {
	if r.markerClaimed {
		return false, nil
	}
	r.markerClaimed = true
	return true, nil
}

type stubNotifier struct {
	notified int
	err      error
}

func (n *stubNotifier) NotifyChanged(_ context.Context) error {
	n.notified++
	return n.err
}

func TestRosterService_UpdateStatus_Success(t *testing.T) {
	repo := newStubRosterRepo()
	repo.records = []domain.PersonnelRecord{{ID: "doc1", Name: "Dr. X", Status: domain.StatusAvailable}}
	notifier := &stubNotifier{}
	svc := NewRosterService(repo, notifier, zerolog.Nop())

	result, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		RecordID:    "doc1",
		DisplayName: "Dr. X",
		Status:      "Busy",
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if result.Message != "Status updated for Dr. X to Busy." {
		t.Fatalf("unexpected feedback message: %q", result.Message)
	}
	if len(repo.updated) != 1 || repo.updated[0].status != domain.StatusBusy {
		t.Fatalf("expected one write of Busy, got %+v", repo.updated)
	}
	if notifier.notified != 1 {
		t.Fatalf("expected one change notification, got %d", notifier.notified)
	}

	snapshot, _ := svc.Snapshot(context.Background())
	if snapshot[0].Status != domain.StatusBusy {
		t.Fatalf("snapshot should reflect the stored status, got %s", snapshot[0].Status)
	}
}

func TestRosterService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newStubRosterRepo()
	repo.records = []domain.PersonnelRecord{{ID: "doc1", Name: "Dr. X", Status: domain.StatusAvailable}}
	svc := NewRosterService(repo, &stubNotifier{}, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		RecordID:    "doc1",
		DisplayName: "Dr. X",
		Status:      "Sleeping",
	})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("no write should reach the store for an out-of-enum status")
	}
}

func TestRosterService_UpdateStatus_RecordNotFound(t *testing.T) {
	repo := newStubRosterRepo()
	notifier := &stubNotifier{}
	svc := NewRosterService(repo, notifier, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		RecordID:    "missing",
		DisplayName: "Dr. Ghost",
		Status:      "Busy",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if notifier.notified != 0 {
		t.Fatalf("failed update must not notify")
	}
}

func TestRosterService_UpdateStatus_NotificationFailureIsNotFatal(t *testing.T) {
	repo := newStubRosterRepo()
	repo.records = []domain.PersonnelRecord{{ID: "doc1", Name: "Dr. X", Status: domain.StatusAvailable}}
	notifier := &stubNotifier{err: errors.New("redis down")}
	svc := NewRosterService(repo, notifier, zerolog.Nop())

	result, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		RecordID:    "doc1",
		DisplayName: "Dr. X",
		Status:      "Break",
	})
	if err != nil {
		t.Fatalf("write succeeded, update must not fail: %v", err)
	}
	if result.Message != "Status updated for Dr. X to Break." {
		t.Fatalf("unexpected feedback message: %q", result.Message)
	}
}

func TestRosterService_EveryCanonicalStatusAccepted(t *testing.T) {
	repo := newStubRosterRepo()
	repo.records = []domain.PersonnelRecord{{ID: "doc1", Name: "Dr. X", Status: domain.StatusAvailable}}
	svc := NewRosterService(repo, &stubNotifier{}, zerolog.Nop())

	for _, status := range domain.AllStatuses {
		if _, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
			RecordID:    "doc1",
			DisplayName: "Dr. X",
			Status:      string(status),
		}); err != nil {
			t.Fatalf("status %q should be accepted: %v", status, err)
		}
	}
}
