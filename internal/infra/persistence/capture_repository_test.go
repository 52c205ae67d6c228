package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

func TestCaptureRepository_ListRecent(t *testing.T) {
	db := openTestDB(t)
	repo := NewCaptureRepository(db)

	for i := 0; i < 25; i++ {
		event := entity.ChangeEvent{
			CustomerID: int64(i + 1),
			FirstName:  "Mario",
			LastName:   "Rossi",
			Action:     entity.ChangeActionUpdate,
			IsUpdate:   true,
			RecordedAt: time.Now().UTC(),
		}
		if err := db.Conn.Create(&event).Error; err != nil {
			t.Fatalf("seed change event: %v", err)
		}
	}

	events, err := repo.ListRecent(context.Background(), 20)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(events) != 20 {
		t.Fatalf("ListRecent() returned %d events, want 20", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].RowID >= events[i-1].RowID {
			t.Errorf("ListRecent() not ordered by row id descending at index %d", i)
		}
	}

	// A peek must not consume: the rows stay unpublished.
	var unpublished int64
	if err := db.Conn.Model(&entity.ChangeEvent{}).Where("published_at IS NULL").Count(&unpublished).Error; err != nil {
		t.Fatalf("count unpublished: %v", err)
	}
	if unpublished != 25 {
		t.Errorf("unpublished rows = %d, want 25", unpublished)
	}
}

func TestCaptureRepository_ListRecent_Empty(t *testing.T) {
	db := openTestDB(t)
	repo := NewCaptureRepository(db)

	events, err := repo.ListRecent(context.Background(), 20)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("ListRecent() on empty log returned %d events, want 0", len(events))
	}
}
