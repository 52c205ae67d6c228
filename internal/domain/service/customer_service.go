package service

import (
	"context"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
)

// UpdateOutcome reports a successful update command back to the caller.
// Failures travel as errors (ErrEmptyComment, repository.ErrCustomerNotFound
// or a storage error) so the transport layer can pick the right status.
type UpdateOutcome struct {
	Customer entity.Customer `json:"customer"`
	Message  string          `json:"message"`
}

type CustomerService interface {
	List(ctx context.Context, filter repository.ListFilter) ([]entity.Customer, error)
	GetByID(ctx context.Context, id int64) (entity.Customer, error)
	FilterValues(ctx context.Context) (repository.FilterValues, error)
	Update(ctx context.Context, id int64, updates map[string]any, comment, user string) (UpdateOutcome, error)
}
