package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/model"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/repository/unitofwork"
	"clipnote-be/pkg/events"
	"clipnote-be/pkg/nats"
)

// activityTemplate is the user-facing rendering of one event type.
type activityTemplate struct {
	Title      string
	Message    string
	EntityType string
}

var activityTemplates = map[string]activityTemplate{
	events.TypeUserRegistered: {Title: "Welcome", Message: "Your account was created", EntityType: "user"},
	events.TypeUserLogin:      {Title: "New sign-in", Message: "Your account was signed in", EntityType: "user"},
	events.TypeNoteCreated:    {Title: "Note saved", Message: "A note was added to your collection", EntityType: "note"},
	events.TypeNoteUpdated:    {Title: "Note updated", Message: "A note was edited", EntityType: "note"},
	events.TypeNoteDeleted:    {Title: "Note removed", Message: "A note was deleted", EntityType: "note"},
	events.TypeClipCreated:    {Title: "Clip saved", Message: "A link was added to your collection", EntityType: "clip"},
	events.TypeClipDeleted:    {Title: "Clip removed", Message: "A link was deleted", EntityType: "clip"},
}

type IActivityService interface {
	Start(subscriber *nats.Subscriber) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.ActivityListResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, activityID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type activityService struct {
	uowFactory unitofwork.UnitOfWorkFactory
	sender     SnapshotSender
	logger     logger.ILogger
}

func NewActivityService(
	uowFactory unitofwork.UnitOfWorkFactory,
	sender SnapshotSender,
	logger logger.ILogger,
) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger,
	}
}

// Start attaches the durable activity worker to the event stream.
// Every domain event becomes a stored activity row plus a live push.
func (s *activityService) Start(subscriber *nats.Subscriber) error {
	if subscriber == nil {
		return nil
	}
	return subscriber.Subscribe("events.>", "activity-worker", s.handleEvent)
}

func (s *activityService) handleEvent(ctx context.Context, event events.Event) error {
	tmpl, ok := activityTemplates[event.EventType()]
	if !ok {
		// Unknown event types are acked and skipped, not retried.
		return nil
	}

	payload := event.Payload()
	rawUserID, _ := payload["user_id"].(string)
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		s.logger.Warn("activity", "event without usable user_id", map[string]interface{}{
			"event_type": event.EventType(),
		})
		return nil
	}

	activity := &model.Activity{
		ID:         uuid.New(),
		UserID:     userID,
		TypeCode:   event.EventType(),
		EntityType: tmpl.EntityType,
		Title:      tmpl.Title,
		Message:    tmpl.Message,
	}
	if entityID := extractEntityID(payload); entityID != nil {
		activity.EntityID = entityID
	}
	if metadata, err := json.Marshal(payload); err == nil {
		activity.Metadata = datatypes.JSON(metadata)
	}

	repos := s.uowFactory.Repositories()
	if err := repos.ActivityRepository().Create(ctx, activity); err != nil {
		return fmt.Errorf("failed to store activity: %w", err)
	}

	s.push(userID, activity)
	return nil
}

func extractEntityID(payload map[string]interface{}) *uuid.UUID {
	for _, key := range []string{"note_id", "clip_id"} {
		if raw, ok := payload[key].(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				return &id
			}
		}
	}
	return nil
}

func (s *activityService) push(userID uuid.UUID, activity *model.Activity) {
	frame, err := json.Marshal(struct {
		Type     string           `json:"type"`
		Activity dto.ActivityItem `json:"activity"`
	}{
		Type:     dto.FrameActivity,
		Activity: toActivityItem(activity),
	})
	if err != nil {
		return
	}
	s.sender.Send(userID, frame)
}

func (s *activityService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.ActivityListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	repos := s.uowFactory.Repositories()
	activities, total, err := repos.ActivityRepository().GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ActivityItem, 0, len(activities))
	for _, a := range activities {
		items = append(items, toActivityItem(a))
	}
	return &dto.ActivityListResponse{Activities: items, Total: total}, nil
}

func (s *activityService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	repos := s.uowFactory.Repositories()
	return repos.ActivityRepository().GetUnreadCount(ctx, userID)
}

func (s *activityService) MarkRead(ctx context.Context, userID, activityID uuid.UUID) error {
	repos := s.uowFactory.Repositories()
	return repos.ActivityRepository().MarkAsRead(ctx, userID, activityID)
}

func (s *activityService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	repos := s.uowFactory.Repositories()
	return repos.ActivityRepository().MarkAllAsRead(ctx, userID)
}

func toActivityItem(a *model.Activity) dto.ActivityItem {
	return dto.ActivityItem{
		Id:        a.ID,
		TypeCode:  a.TypeCode,
		Title:     a.Title,
		Message:   a.Message,
		IsRead:    a.IsRead,
		ReadAt:    a.ReadAt,
		CreatedAt: a.CreatedAt,
	}
}
