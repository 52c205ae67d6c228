package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mverdi/insurance-crm/internal/config"
	"github.com/mverdi/insurance-crm/internal/infra/notification"
	"github.com/mverdi/insurance-crm/internal/infra/persistence"
	"github.com/mverdi/insurance-crm/internal/transport/http/handlers"
	"github.com/mverdi/insurance-crm/internal/transport/http/middleware"
	"github.com/mverdi/insurance-crm/internal/usecase"
)

func Run(ctx context.Context, cfg config.Config) error {
	start := time.Now()
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
	log.Infof("bootstrap: db init in %s", time.Since(start))
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
	log.Infof("bootstrap: db ping in %s", time.Since(start))

	var notifier notification.Notifier = notification.Nop{}
	if cfg.SMTP.Host != "" {
		notifier = notification.NewMailer(notification.MailerConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
			Subject:  cfg.SMTP.Subject,
		})
	}

	customerRepo := persistence.NewCustomerRepository(conn)
	auditRepo := persistence.NewAuditRepository(conn)
	captureRepo := persistence.NewCaptureRepository(conn)
	noteRepo := persistence.NewNoteRepository(conn)

	customerUC := usecase.NewCustomer(customerRepo, log)
	auditUC := usecase.NewAudit(auditRepo, captureRepo, log)
	noteUC := usecase.NewNote(noteRepo, notifier, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.ActingUser(cfg.Auth.UserHeader, cfg.Auth.DefaultUser),
		middleware.Logger(log),
		gin.Recovery(),
	)
	handler := handlers.NewHandler(customerUC, auditUC, noteUC, conn)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("bootstrap: server listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}

	return nil
}
