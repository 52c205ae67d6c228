package service

import (
	"context"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

// AuditFeed carries a best-effort audit read. Degraded is set when storage
// failed and the entries were substituted with an empty list so the rest of
// the view can still render.
type AuditFeed struct {
	Entries  []entity.AuditRecord `json:"entries"`
	Degraded bool                 `json:"degraded,omitempty"`
}

// ChangeFeed is the change-capture counterpart of AuditFeed.
type ChangeFeed struct {
	Events   []entity.ChangeEvent `json:"events"`
	Degraded bool                 `json:"degraded,omitempty"`
}

type AuditService interface {
	Recent(ctx context.Context, limit int) AuditFeed
	All(ctx context.Context) AuditFeed
	Changes(ctx context.Context) ChangeFeed
}

type NoteService interface {
	Save(ctx context.Context, table, text, author string) (entity.TableNote, error)
	GetLatest(ctx context.Context, table string) (*entity.TableNote, error)
}
