package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/specification"
)

type clipRepository struct {
	db *gorm.DB
}

func NewClipRepository(db *gorm.DB) contract.ClipRepository {
	return &clipRepository{db: db}
}

func (r *clipRepository) Create(ctx context.Context, clip *model.Clip) error {
	return r.db.WithContext(ctx).Create(clip).Error
}

func (r *clipRepository) Update(ctx context.Context, clip *model.Clip) error {
	return r.db.WithContext(ctx).Save(clip).Error
}

func (r *clipRepository) Delete(ctx context.Context, specs ...specification.Specification) error {
	db := applySpecifications(r.db.WithContext(ctx), specs)
	return db.Delete(&model.Clip{}).Error
}

func (r *clipRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*model.Clip, error) {
	var clip model.Clip
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.First(&clip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clip, nil
}

func (r *clipRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Clip, error) {
	var clips []*model.Clip
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.Find(&clips).Error; err != nil {
		return nil, err
	}
	return clips, nil
}

func (r *clipRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	db := applySpecifications(r.db.WithContext(ctx).Model(&model.Clip{}), specs)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
