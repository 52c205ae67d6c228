package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
)

type CustomerRepository struct {
	db *DB
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List(ctx context.Context, filter repository.ListFilter) ([]entity.Customer, error) {
	query := r.db.Read(ctx).Order("customer_id ASC")

	if filter.Status != "" && filter.Status != "All" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PolicyType != "" && filter.PolicyType != "All" {
		query = query.Where("policy_type = ?", filter.PolicyType)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(policy_number) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var customers []entity.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (entity.Customer, error) {
	var customer entity.Customer
	if err := r.db.Read(ctx).First(&customer, "customer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Customer{}, repository.ErrCustomerNotFound
		}
		return entity.Customer{}, err
	}
	return customer, nil
}

func (r *CustomerRepository) DistinctFilterValues(ctx context.Context) (repository.FilterValues, error) {
	var values repository.FilterValues
	if err := r.db.Read(ctx).
		Model(&entity.Customer{}).
		Distinct("status").
		Where("status IS NOT NULL AND status <> ''").
		Order("status").
		Pluck("status", &values.Statuses).Error; err != nil {
		return repository.FilterValues{}, err
	}
	if err := r.db.Read(ctx).
		Model(&entity.Customer{}).
		Distinct("policy_type").
		Where("policy_type IS NOT NULL AND policy_type <> ''").
		Order("policy_type").
		Pluck("policy_type", &values.PolicyTypes).Error; err != nil {
		return repository.FilterValues{}, err
	}
	return values, nil
}

// UpdateWithAudit runs the whole update-and-audit flow in one transaction:
// before-image, field update with modified-by/at stamps, after-image, audit
// append. If any step fails the customer row is rolled back too, so an
// updated record without its audit entry cannot exist.
func (r *CustomerRepository) UpdateWithAudit(ctx context.Context, id int64, updates map[string]any, comment, user string) (entity.Customer, error) {
	var after entity.Customer
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		var before entity.Customer
		if err := r.db.Write(txCtx).First(&before, "customer_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrCustomerNotFound
			}
			return err
		}

		now := time.Now().UTC()
		stamped := make(map[string]any, len(updates)+2)
		for field, value := range updates {
			stamped[field] = value
		}
		stamped["last_modified_by"] = user
		stamped["last_modified_at"] = now

		if err := r.db.Write(txCtx).
			Model(&entity.Customer{}).
			Where("customer_id = ?", id).
			Updates(stamped).Error; err != nil {
			return err
		}

		// Re-fetch so the snapshot carries exactly what storage holds.
		if err := r.db.Write(txCtx).First(&after, "customer_id = ?", id).Error; err != nil {
			return err
		}

		oldValues, err := json.Marshal(before)
		if err != nil {
			return err
		}
		newValues, err := json.Marshal(after)
		if err != nil {
			return err
		}

		audit := entity.AuditEntry{
			CustomerID: id,
			ModifiedBy: user,
			ModifiedAt: now,
			Comment:    comment,
			ChangeType: entity.ChangeTypeUpdate,
			OldValues:  datatypes.JSON(oldValues),
			NewValues:  datatypes.JSON(newValues),
		}
		return r.db.Write(txCtx).Create(&audit).Error
	})
	if err != nil {
		return entity.Customer{}, err
	}
	return after, nil
}
