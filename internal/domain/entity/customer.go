package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive    = "Active"
	StatusPending   = "Pending"
	StatusSuspended = "Suspended"
	StatusCancelled = "Cancelled"
)

const (
	PolicyAuto   = "Auto"
	PolicyHome   = "Home"
	PolicyLife   = "Life"
	PolicyHealth = "Health"
)

// Statuses and PolicyTypes are the values the edit form offers. The writer
// does not enforce them; out-of-band rows may carry other values.
var (
	Statuses    = []string{StatusActive, StatusPending, StatusSuspended, StatusCancelled}
	PolicyTypes = []string{PolicyAuto, PolicyHome, PolicyLife, PolicyHealth}
)

type Customer struct {
	ID             int64           `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	FirstName      string          `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string          `gorm:"column:last_name;not null" json:"last_name"`
	Email          string          `gorm:"column:email" json:"email"`
	Phone          string          `gorm:"column:phone" json:"phone"`
	PolicyType     string          `gorm:"column:policy_type" json:"policy_type"`
	PolicyNumber   string          `gorm:"column:policy_number" json:"policy_number"`
	PremiumAmount  decimal.Decimal `gorm:"column:premium_amount;type:numeric(10,2)" json:"premium_amount"`
	Status         string          `gorm:"column:status" json:"status"`
	StartDate      time.Time       `gorm:"column:start_date;type:date" json:"start_date"`
	LastModifiedBy string          `gorm:"column:last_modified_by" json:"last_modified_by"`
	LastModifiedAt time.Time       `gorm:"column:last_modified_at" json:"last_modified_at"`
}

func (Customer) TableName() string {
	return "customers"
}
