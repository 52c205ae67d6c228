package persistence

import (
	"context"
	"time"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
)

type CaptureRepository struct {
	db *DB
}

var _ repository.CaptureRepository = (*CaptureRepository)(nil)

func NewCaptureRepository(db *DB) *CaptureRepository {
	return &CaptureRepository{db: db}
}

func (r *CaptureRepository) ListRecent(ctx context.Context, limit int) ([]entity.ChangeEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []entity.ChangeEvent
	if err := r.db.Read(ctx).
		Order("row_id DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *CaptureRepository) Claim(ctx context.Context, limit int, lockTimeout time.Duration, maxAttempts int) ([]entity.ChangeEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	if lockTimeout <= 0 {
		lockTimeout = time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	lockSeconds := int(lockTimeout.Seconds())

	query := `
WITH cte AS (
    SELECT row_id
    FROM customer_changes
    WHERE published_at IS NULL
      AND attempts < ?
      AND (locked_at IS NULL OR locked_at < NOW() - (? * INTERVAL '1 second'))
    ORDER BY row_id
    LIMIT ?
    FOR UPDATE SKIP LOCKED
)
UPDATE customer_changes
SET locked_at = NOW(), attempts = attempts + 1
WHERE row_id IN (SELECT row_id FROM cte)
RETURNING row_id, customer_id, first_name, last_name, action, is_update, recorded_at, locked_at, published_at, attempts, last_error;
`

	var events []entity.ChangeEvent
	if err := r.db.Write(ctx).Raw(query, maxAttempts, lockSeconds, limit).Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *CaptureRepository) MarkPublished(ctx context.Context, rowID int64) error {
	return r.db.Write(ctx).
		Exec(`UPDATE customer_changes SET published_at = NOW(), locked_at = NULL WHERE row_id = ?`, rowID).
		Error
}

func (r *CaptureRepository) MarkFailed(ctx context.Context, rowID int64, errMsg string) error {
	return r.db.Write(ctx).
		Exec(`UPDATE customer_changes SET last_error = ?, locked_at = NULL WHERE row_id = ?`, errMsg, rowID).
		Error
}
