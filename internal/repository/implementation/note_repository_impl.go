package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/specification"
)

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, specs ...specification.Specification) error {
	db := applySpecifications(r.db.WithContext(ctx), specs)
	return db.Delete(&model.Note{}).Error
}

func (r *noteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*model.Note, error) {
	var note model.Note
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Note, error) {
	var notes []*model.Note
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	db := applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
