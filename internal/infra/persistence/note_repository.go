package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mverdi/insurance-crm/internal/domain/entity"
	"github.com/mverdi/insurance-crm/internal/domain/repository"
)

type NoteRepository struct {
	db *DB
}

var _ repository.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Save(ctx context.Context, table, text, author string) (entity.TableNote, error) {
	note := entity.TableNote{
		Table:     table,
		Text:      text,
		CreatedBy: author,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Write(ctx).Create(&note).Error; err != nil {
		return entity.TableNote{}, err
	}
	return note, nil
}

func (r *NoteRepository) GetLatest(ctx context.Context, table string) (entity.TableNote, error) {
	var note entity.TableNote
	err := r.db.Read(ctx).
		Where("table_name = ?", table).
		Order("created_at DESC").
		Order("note_id DESC").
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.TableNote{}, repository.ErrNoteNotFound
		}
		return entity.TableNote{}, err
	}
	return note, nil
}
