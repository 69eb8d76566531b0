package contract

import (
	"context"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/specification"
)

type ClipRepository interface {
	Create(ctx context.Context, clip *model.Clip) error
	Update(ctx context.Context, clip *model.Clip) error
	Delete(ctx context.Context, specs ...specification.Specification) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.Clip, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Clip, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
