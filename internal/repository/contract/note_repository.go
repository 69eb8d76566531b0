package contract

import (
	"context"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, specs ...specification.Specification) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
