package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

type fakeAuditRepo struct {
	recent []entity.AuditRecord
	all    []entity.AuditRecord
	err    error
}

func (f *fakeAuditRepo) ListRecent(ctx context.Context, limit int) ([]entity.AuditRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeAuditRepo) ListAll(ctx context.Context) ([]entity.AuditRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

type fakeCaptureRepo struct {
	events []entity.ChangeEvent
	err    error
}

func (f *fakeCaptureRepo) ListRecent(ctx context.Context, limit int) ([]entity.ChangeEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeCaptureRepo) Claim(ctx context.Context, limit int, lockTimeout time.Duration, maxAttempts int) ([]entity.ChangeEvent, error) {
	return nil, errors.New("not used")
}
func (f *fakeCaptureRepo) MarkPublished(ctx context.Context, rowID int64) error { return nil }
func (f *fakeCaptureRepo) MarkFailed(ctx context.Context, rowID int64, errMsg string) error {
	return nil
}

func TestAudit_Recent(t *testing.T) {
	repo := &fakeAuditRepo{recent: []entity.AuditRecord{{AuditID: 2}, {AuditID: 1}}}
	uc := NewAudit(repo, &fakeCaptureRepo{}, testLogger())

	feed := uc.Recent(context.Background(), 10)
	if feed.Degraded {
		t.Error("Recent() degraded on healthy storage")
	}
	if len(feed.Entries) != 2 {
		t.Errorf("Recent() returned %d entries, want 2", len(feed.Entries))
	}
}

func TestAudit_Recent_DegradesToEmpty(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("connection refused")}
	uc := NewAudit(repo, &fakeCaptureRepo{}, testLogger())

	feed := uc.Recent(context.Background(), 10)
	if !feed.Degraded {
		t.Error("Recent() should flag a degraded feed on storage failure")
	}
	if feed.Entries == nil || len(feed.Entries) != 0 {
		t.Errorf("Recent() entries = %v, want empty non-nil slice", feed.Entries)
	}
}

func TestAudit_All_DegradesToEmpty(t *testing.T) {
	uc := NewAudit(&fakeAuditRepo{err: errors.New("boom")}, &fakeCaptureRepo{}, testLogger())

	feed := uc.All(context.Background())
	if !feed.Degraded || len(feed.Entries) != 0 {
		t.Errorf("All() = %+v, want empty degraded feed", feed)
	}
}

func TestAudit_Changes_CapsAtTwenty(t *testing.T) {
	events := make([]entity.ChangeEvent, 30)
	for i := range events {
		events[i] = entity.ChangeEvent{RowID: int64(30 - i)}
	}
	uc := NewAudit(&fakeAuditRepo{}, &fakeCaptureRepo{events: events}, testLogger())

	feed := uc.Changes(context.Background())
	if feed.Degraded {
		t.Error("Changes() degraded on healthy storage")
	}
	if len(feed.Events) != 20 {
		t.Errorf("Changes() returned %d events, want 20", len(feed.Events))
	}
}

func TestAudit_Changes_DegradesToEmpty(t *testing.T) {
	uc := NewAudit(&fakeAuditRepo{}, &fakeCaptureRepo{err: errors.New("stream gone")}, testLogger())

	feed := uc.Changes(context.Background())
	if !feed.Degraded {
		t.Error("Changes() should flag a degraded feed on read failure")
	}
	if feed.Events == nil || len(feed.Events) != 0 {
		t.Errorf("Changes() events = %v, want empty non-nil slice", feed.Events)
	}
}
