package entity

import "time"

const (
	ChangeActionInsert = "INSERT"
	ChangeActionUpdate = "UPDATE"
	ChangeActionDelete = "DELETE"
)

// ChangeEvent is one row of the externally maintained change-capture log for
// the customer table. The dashboard only peeks the newest rows; the relay
// worker is the sole consumer and uses the bookkeeping columns to claim rows
// and mark them published.
type ChangeEvent struct {
	RowID       int64      `gorm:"column:row_id;primaryKey;autoIncrement" json:"row_id"`
	CustomerID  int64      `gorm:"column:customer_id;not null" json:"customer_id"`
	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Action      string     `gorm:"column:action;not null" json:"action"`
	IsUpdate    bool       `gorm:"column:is_update;not null" json:"is_update"`
	RecordedAt  time.Time  `gorm:"column:recorded_at;not null" json:"recorded_at"`
	LockedAt    *time.Time `gorm:"column:locked_at" json:"-"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"-"`
	Attempts    int        `gorm:"column:attempts;not null;default:0" json:"-"`
	LastError   string     `gorm:"column:last_error" json:"-"`
}

func (ChangeEvent) TableName() string {
	return "customer_changes"
}
