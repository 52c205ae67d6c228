package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
	"github.com/mverdi/insurance-crm/internal/domain/service"
)

// ErrEmptyComment rejects an update whose mandatory comment is empty or
// whitespace. It is raised before any storage call.
var ErrEmptyComment = errors.New("a comment describing the change is required")

type Customer struct {
	repo repository.CustomerRepository
	log  *logrus.Logger
}

var _ service.CustomerService = (*Customer)(nil)

func NewCustomer(repo repository.CustomerRepository, log *logrus.Logger) *Customer {
	return &Customer{repo: repo, log: log}
}

func (u *Customer) List(ctx context.Context, filter repository.ListFilter) ([]entity.Customer, error) {
	customers, err := u.repo.List(ctx, filter)
	if err != nil {
		u.log.WithError(err).Error("list customers failed")
		return nil, err
	}
	return customers, nil
}

func (u *Customer) GetByID(ctx context.Context, id int64) (entity.Customer, error) {
	customer, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			u.log.WithError(err).Error("get customer failed")
		}
		return entity.Customer{}, err
	}
	return customer, nil
}

func (u *Customer) FilterValues(ctx context.Context) (repository.FilterValues, error) {
	values, err := u.repo.DistinctFilterValues(ctx)
	if err != nil {
		u.log.WithError(err).Error("load filter values failed")
		return repository.FilterValues{}, err
	}
	return values, nil
}

// Update validates the comment, then delegates the transactional
// update-and-audit flow to the repository. Validation and not-found failures
// leave storage untouched.
func (u *Customer) Update(ctx context.Context, id int64, updates map[string]any, comment, user string) (service.UpdateOutcome, error) {
	if strings.TrimSpace(comment) == "" {
		return service.UpdateOutcome{}, ErrEmptyComment
	}

	customer, err := u.repo.UpdateWithAudit(ctx, id, updates, comment, user)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return service.UpdateOutcome{}, err
		}
		u.log.WithError(err).WithField("customer_id", id).Error("update customer failed")
		return service.UpdateOutcome{}, err
	}

	u.log.WithFields(logrus.Fields{
		"customer_id": id,
		"user":        user,
	}).Info("customer updated")

	return service.UpdateOutcome{
		Customer: customer,
		Message:  "Customer updated successfully",
	}, nil
}
