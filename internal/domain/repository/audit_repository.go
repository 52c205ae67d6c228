package repository

import (
	"context"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

type AuditRepository interface {
	// ListRecent returns at most limit entries, newest first by modification
	// time, each joined with the customer's display name.
	ListRecent(ctx context.Context, limit int) ([]entity.AuditRecord, error)

	// ListAll returns the full audit trail in reverse insertion order
	// (audit id descending), including the before/after snapshots.
	ListAll(ctx context.Context) ([]entity.AuditRecord, error)
}

type NoteRepository interface {
	Save(ctx context.Context, table, text, author string) (entity.TableNote, error)
	GetLatest(ctx context.Context, table string) (entity.TableNote, error)
}
