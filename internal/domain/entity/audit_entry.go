package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ChangeTypeUpdate is the only change type this system writes; the audit
// table itself accepts any tag.
const ChangeTypeUpdate = "UPDATE"

// AuditEntry is one immutable row of the customer audit trail. OldValues and
// NewValues hold full JSON snapshots of the record immediately before and
// after the mutation.
type AuditEntry struct {
	ID         int64          `gorm:"column:audit_id;primaryKey;autoIncrement" json:"audit_id"`
	CustomerID int64          `gorm:"column:customer_id;not null;index" json:"customer_id"`
	ModifiedBy string         `gorm:"column:modified_by;not null" json:"modified_by"`
	ModifiedAt time.Time      `gorm:"column:modified_at;not null" json:"modified_at"`
	Comment    string         `gorm:"column:comment;not null" json:"comment"`
	ChangeType string         `gorm:"column:change_type;not null" json:"change_type"`
	OldValues  datatypes.JSON `gorm:"column:old_values;type:jsonb" json:"old_values"`
	NewValues  datatypes.JSON `gorm:"column:new_values;type:jsonb" json:"new_values"`
}

func (AuditEntry) TableName() string {
	return "customer_audit_log"
}

// AuditRecord is an audit entry joined with the customer's display name at
// read time. CustomerName is nil when the customer no longer exists.
type AuditRecord struct {
	AuditID      int64          `gorm:"column:audit_id" json:"audit_id"`
	CustomerID   int64          `gorm:"column:customer_id" json:"customer_id"`
	CustomerName *string        `gorm:"column:customer_name" json:"customer_name"`
	ModifiedBy   string         `gorm:"column:modified_by" json:"modified_by"`
	ModifiedAt   time.Time      `gorm:"column:modified_at" json:"modified_at"`
	Comment      string         `gorm:"column:comment" json:"comment"`
	ChangeType   string         `gorm:"column:change_type" json:"change_type"`
	OldValues    datatypes.JSON `gorm:"column:old_values" json:"old_values,omitempty"`
	NewValues    datatypes.JSON `gorm:"column:new_values" json:"new_values,omitempty"`
}
