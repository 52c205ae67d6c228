package bootstrap

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"

	"github.com/mverdi/insurance-crm/internal/config"
	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/infra/persistence"
)

func Seed(ctx context.Context, cfg config.Config, count, batchSize int) error {
	if count <= 0 {
		count = 10
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	conn, err := persistence.New(ctx, persistence.Config{
		WriteDSN:        cfg.Database.WriteDSN,
		ReadDSN:         cfg.Database.ReadDSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	pingCtx := ctx
	if cfg.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()
	}
	if err := conn.Ping(pingCtx); err != nil {
		return err
	}

	now := time.Now().UTC()
	customers := make([]entity.Customer, 0, batchSize)
	for i := 0; i < count; i++ {
		first := faker.FirstName()
		last := faker.LastName()
		customer := entity.Customer{
			FirstName:      first,
			LastName:       last,
			Email:          fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Phone:          faker.Phonenumber(),
			PolicyType:     entity.PolicyTypes[rand.Intn(len(entity.PolicyTypes))],
			PolicyNumber:   fmt.Sprintf("POL-%06d", rand.Intn(1_000_000)),
			PremiumAmount:  decimal.NewFromFloat(float64(rand.Intn(490_000)+10_000) / 100),
			Status:         entity.Statuses[rand.Intn(len(entity.Statuses))],
			StartDate:      now.AddDate(-rand.Intn(5), -rand.Intn(12), 0),
			LastModifiedBy: "seed",
			LastModifiedAt: now,
		}
		customers = append(customers, customer)
		if len(customers) == batchSize {
			if err := conn.Write(ctx).CreateInBatches(&customers, batchSize).Error; err != nil {
				return err
			}
			customers = customers[:0]
		}
	}
	if len(customers) > 0 {
		if err := conn.Write(ctx).CreateInBatches(&customers, batchSize).Error; err != nil {
			return err
		}
	}

	log.Infof("bootstrap: seeded %d customers", count)
	return nil
}
