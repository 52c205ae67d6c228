package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
	"github.com/mverdi/insurance-crm/internal/domain/service"
	"github.com/mverdi/insurance-crm/internal/infra/notification"
)

type Note struct {
	repo     repository.NoteRepository
	notifier notification.Notifier
	log      *logrus.Logger
}

var _ service.NoteService = (*Note)(nil)

func NewNote(repo repository.NoteRepository, notifier notification.Notifier, log *logrus.Logger) *Note {
	if notifier == nil {
		notifier = notification.Nop{}
	}
	return &Note{repo: repo, notifier: notifier, log: log}
}

// Save appends the note, then attempts notification delivery. Delivery
// failures are logged and swallowed; the save outcome does not depend on
// them.
func (u *Note) Save(ctx context.Context, table, text, author string) (entity.TableNote, error) {
	note, err := u.repo.Save(ctx, table, text, author)
	if err != nil {
		u.log.WithError(err).Error("save note failed")
		return entity.TableNote{}, err
	}

	event := notification.NoteEvent{
		Table:   note.Table,
		Author:  note.CreatedBy,
		Text:    note.Text,
		SavedAt: note.CreatedAt,
	}
	if err := u.notifier.NotifyNoteSaved(ctx, event); err != nil {
		u.log.WithError(err).WithField("table", table).Warn("note notification failed")
	}

	return note, nil
}

// GetLatest returns nil when no note exists or the read fails; the latest
// note is decorative and must never block the view.
func (u *Note) GetLatest(ctx context.Context, table string) (*entity.TableNote, error) {
	note, err := u.repo.GetLatest(ctx, table)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, nil
		}
		u.log.WithError(err).Warn("latest note read failed")
		return nil, nil
	}
	return &note, nil
}
