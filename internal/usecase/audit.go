package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
	"github.com/mverdi/insurance-crm/internal/domain/service"
)

// captureLimit caps the change-capture peek at the 20 newest delta rows.
const captureLimit = 20

// Audit serves the read-only report views. All three reads are best-effort:
// a storage failure degrades to an empty, marked feed instead of blocking
// the rest of the dashboard from rendering.
type Audit struct {
	audit   repository.AuditRepository
	capture repository.CaptureRepository
	log     *logrus.Logger
}

var _ service.AuditService = (*Audit)(nil)

func NewAudit(audit repository.AuditRepository, capture repository.CaptureRepository, log *logrus.Logger) *Audit {
	return &Audit{audit: audit, capture: capture, log: log}
}

func (u *Audit) Recent(ctx context.Context, limit int) service.AuditFeed {
	entries, err := u.audit.ListRecent(ctx, limit)
	if err != nil {
		u.log.WithError(err).Warn("recent audit read failed, serving empty feed")
		return service.AuditFeed{Entries: []entity.AuditRecord{}, Degraded: true}
	}
	if entries == nil {
		entries = []entity.AuditRecord{}
	}
	return service.AuditFeed{Entries: entries}
}

func (u *Audit) All(ctx context.Context) service.AuditFeed {
	entries, err := u.audit.ListAll(ctx)
	if err != nil {
		u.log.WithError(err).Warn("full audit read failed, serving empty feed")
		return service.AuditFeed{Entries: []entity.AuditRecord{}, Degraded: true}
	}
	if entries == nil {
		entries = []entity.AuditRecord{}
	}
	return service.AuditFeed{Entries: entries}
}

func (u *Audit) Changes(ctx context.Context) service.ChangeFeed {
	events, err := u.capture.ListRecent(ctx, captureLimit)
	if err != nil {
		u.log.WithError(err).Warn("change capture read failed, serving empty feed")
		return service.ChangeFeed{Events: []entity.ChangeEvent{}, Degraded: true}
	}
	if events == nil {
		events = []entity.ChangeEvent{}
	}
	return service.ChangeFeed{Events: events}
}
