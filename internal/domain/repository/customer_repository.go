package repository

import (
	"context"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

// ListFilter narrows the customer listing. Zero-value (or "All") fields are
// no-ops; provided fields combine conjunctively. Search matches
// case-insensitively against first name, last name, email and policy number.
type ListFilter struct {
	Status     string
	PolicyType string
	Search     string
}

// FilterValues are the distinct values currently present in the table,
// used to populate the filter dropdowns.
type FilterValues struct {
	Statuses    []string `json:"statuses"`
	PolicyTypes []string `json:"policy_types"`
}

type CustomerRepository interface {
	List(ctx context.Context, filter ListFilter) ([]entity.Customer, error)
	GetByID(ctx context.Context, id int64) (entity.Customer, error)
	DistinctFilterValues(ctx context.Context) (FilterValues, error)

	// UpdateWithAudit applies the field updates, stamps last_modified_by/at,
	// and appends one audit entry carrying before/after snapshots, all in a
	// single transaction. Returns the authoritative post-update record.
	UpdateWithAudit(ctx context.Context, id int64, updates map[string]any, comment, user string) (entity.Customer, error)
}
