package contract

import (
	"context"

	"github.com/google/uuid"

	"clipnote-be/internal/model"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Activity, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, activityID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}
