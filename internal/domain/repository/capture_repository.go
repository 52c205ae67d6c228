package repository

import (
	"context"
	"time"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

type CaptureRepository interface {
	// ListRecent peeks the newest rows of the change-capture log without
	// consuming them.
	ListRecent(ctx context.Context, limit int) ([]entity.ChangeEvent, error)

	// Claim locks up to limit unpublished rows for the relay worker.
	Claim(ctx context.Context, limit int, lockTimeout time.Duration, maxAttempts int) ([]entity.ChangeEvent, error)
	MarkPublished(ctx context.Context, rowID int64) error
	MarkFailed(ctx context.Context, rowID int64, errMsg string) error
}
