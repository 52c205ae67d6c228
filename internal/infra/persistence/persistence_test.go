package persistence

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&entity.Customer{},
		&entity.AuditEntry{},
		&entity.TableNote{},
		&entity.ChangeEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db := &DB{Conn: gdb}
	t.Cleanup(db.Close)
	return db
}

func seedCustomer(t *testing.T, db *DB, c entity.Customer) entity.Customer {
	t.Helper()
	if c.LastModifiedAt.IsZero() {
		c.LastModifiedAt = time.Now().UTC()
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if err := db.Conn.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func defaultCustomers(t *testing.T, db *DB) []entity.Customer {
	t.Helper()
	out := []entity.Customer{
		seedCustomer(t, db, entity.Customer{
			FirstName: "Mario", LastName: "Rossi", Email: "mario.rossi@example.com",
			PolicyType: entity.PolicyAuto, PolicyNumber: "POL-000001",
			PremiumAmount: decimal.NewFromFloat(480.50), Status: entity.StatusActive,
		}),
		seedCustomer(t, db, entity.Customer{
			FirstName: "Lucia", LastName: "Bianchi", Email: "lucia.bianchi@example.com",
			PolicyType: entity.PolicyHome, PolicyNumber: "POL-000002",
			PremiumAmount: decimal.NewFromFloat(820.00), Status: entity.StatusPending,
		}),
		seedCustomer(t, db, entity.Customer{
			FirstName: "Marco", LastName: "Verdi", Email: "marco.verdi@example.com",
			PolicyType: entity.PolicyAuto, PolicyNumber: "POL-000003",
			PremiumAmount: decimal.NewFromFloat(310.75), Status: entity.StatusPending,
		}),
	}
	return out
}
