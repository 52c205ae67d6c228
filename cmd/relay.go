/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mverdi/insurance-crm/internal/bootstrap"
	"github.com/mverdi/insurance-crm/internal/config"
	"github.com/mverdi/insurance-crm/internal/infra/messaging"
	"github.com/mverdi/insurance-crm/internal/infra/persistence"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Publish change-capture rows to NATS JetStream",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		log, err := bootstrap.BuildLogger(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "log error:", err)
			os.Exit(1)
		}

		db, err := persistence.New(cmd.Context(), persistence.Config{
			WriteDSN:        cfg.Database.WriteDSN,
			ReadDSN:         cfg.Database.ReadDSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "db error:", err)
			os.Exit(1)
		}
		defer db.Close()

		natsClient, err := messaging.NewNATS(cmd.Context(), cfg.NATS)
		if err != nil {
			fmt.Fprintln(os.Stderr, "nats error:", err)
			os.Exit(1)
		}
		if natsClient == nil {
			fmt.Fprintln(os.Stderr, "nats error: nats url is required")
			os.Exit(1)
		}
		defer natsClient.Close()

		repo := persistence.NewCaptureRepository(db)
		log.Infof("relay: started (batch=%d, interval=%s)", cfg.Relay.BatchSize, cfg.Relay.PollInterval)

		ticker := time.NewTicker(cfg.Relay.PollInterval)
		defer ticker.Stop()

		for {
			if err := relayChanges(cmd.Context(), cfg, repo, natsClient, log); err != nil {
				log.WithError(err).Warn("relay: process failed")
			}
			select {
			case <-cmd.Context().Done():
				return
			case <-ticker.C:
			}
		}
	},
}

func relayChanges(ctx context.Context, cfg config.Config, repo *persistence.CaptureRepository, natsClient *messaging.NATSClient, log *logrus.Logger) error {
	events, err := repo.Claim(ctx, cfg.Relay.BatchSize, cfg.Relay.LockTimeout, cfg.Relay.MaxAttempts)
	if err != nil {
		return err
	}
	for _, event := range events {
		if err := natsClient.PublishChangeEvent(ctx, event); err != nil {
			if err := repo.MarkFailed(ctx, event.RowID, err.Error()); err != nil {
				log.WithError(err).Warn("relay: mark failed")
			}
			continue
		}
		if err := repo.MarkPublished(ctx, event.RowID); err != nil {
			log.WithError(err).Warn("relay: mark published")
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(relayCmd)
}
