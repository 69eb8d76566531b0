package mapper

import (
	"time"

	"clipnote-be/internal/entity"
	"clipnote-be/internal/model"
)

type ClipMapper struct{}

func NewClipMapper() *ClipMapper {
	return &ClipMapper{}
}

func (m *ClipMapper) ToEntity(c *model.Clip) *entity.Clip {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Clip{
		Id:        c.Id,
		Url:       c.Url,
		Title:     c.Title,
		Note:      c.Note,
		UserId:    c.UserId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ClipMapper) ToModel(c *entity.Clip) *model.Clip {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Clip{
		Id:        c.Id,
		Url:       c.Url,
		Title:     c.Title,
		Note:      c.Note,
		UserId:    c.UserId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ClipMapper) ToEntities(clips []*model.Clip) []*entity.Clip {
	entities := make([]*entity.Clip, len(clips))
	for i, c := range clips {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
