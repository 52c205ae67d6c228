package persistence

import (
	"context"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
)

type AuditRepository struct {
	db *DB
}

var _ repository.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Audit rows outlive their customer, so the display name comes from an outer
// join and scans as NULL once the customer is gone.
const auditSelect = `
SELECT
    a.audit_id,
    a.customer_id,
    c.first_name || ' ' || c.last_name AS customer_name,
    a.modified_by,
    a.modified_at,
    a.comment,
    a.change_type,
    a.old_values,
    a.new_values
FROM customer_audit_log a
LEFT JOIN customers c ON a.customer_id = c.customer_id
`

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]entity.AuditRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []entity.AuditRecord
	if err := r.db.Read(ctx).
		Raw(auditSelect+`ORDER BY a.modified_at DESC, a.audit_id DESC LIMIT ?`, limit).
		Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AuditRepository) ListAll(ctx context.Context) ([]entity.AuditRecord, error) {
	var records []entity.AuditRecord
	if err := r.db.Read(ctx).
		Raw(auditSelect + `ORDER BY a.audit_id DESC`).
		Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
