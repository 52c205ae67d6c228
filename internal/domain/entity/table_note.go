package entity

import "time"

// TableNote is a free-text note attached to a table. Notes are append-only;
// the latest note per table is derived by creation time.
type TableNote struct {
	ID        int64     `gorm:"column:note_id;primaryKey;autoIncrement" json:"note_id"`
	Table     string    `gorm:"column:table_name;not null;index" json:"table_name"`
	Text      string    `gorm:"column:note_text;not null" json:"note_text"`
	CreatedBy string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (TableNote) TableName() string {
	return "table_notes"
}
