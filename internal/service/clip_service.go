package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/entity"
	"clipnote-be/internal/mapper"
	"clipnote-be/internal/model"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/internal/repository/unitofwork"
	"clipnote-be/pkg/events"
)

type IClipService interface {
	Create(ctx context.Context, userID uuid.UUID, url, title, note string) (*entity.Clip, error)
	Delete(ctx context.Context, userID, clipID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Clip, error)
}

type clipService struct {
	uowFactory unitofwork.UnitOfWorkFactory
	mapper     *mapper.ClipMapper
	changeFeed IChangeFeedService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewClipService(
	uowFactory unitofwork.UnitOfWorkFactory,
	changeFeed IChangeFeedService,
	publisher IPublisherService,
	logger logger.ILogger,
) IClipService {
	return &clipService{
		uowFactory: uowFactory,
		mapper:     mapper.NewClipMapper(),
		changeFeed: changeFeed,
		publisher:  publisher,
		logger:     logger,
	}
}

// NormalizeURL trims the raw value and prepends https:// when no
// http or https scheme is present. An empty or whitespace-only value
// normalizes to "".
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// Create stores a clip. The title falls back to the normalized URL
// when blank, and the note is stored as an empty string rather than
// being left unset.
func (s *clipService) Create(ctx context.Context, userID uuid.UUID, url, title, note string) (*entity.Clip, error) {
	normalized := NormalizeURL(url)
	if normalized == "" {
		return nil, ErrEmptyURL
	}

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		trimmedTitle = normalized
	}

	clip := &model.Clip{
		Id:     uuid.New(),
		Url:    normalized,
		Title:  trimmedTitle,
		Note:   strings.TrimSpace(note),
		UserId: userID,
	}

	repos := s.uowFactory.Repositories()
	if err := repos.ClipRepository().Create(ctx, clip); err != nil {
		s.logger.Error("clip", "failed to create clip", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	s.notifyChange(ctx, userID, events.TypeClipCreated, clip.Id)
	return s.mapper.ToEntity(clip), nil
}

// Delete removes a clip by id, succeeding even when the clip is
// already gone.
func (s *clipService) Delete(ctx context.Context, userID, clipID uuid.UUID) error {
	repos := s.uowFactory.Repositories()
	if err := repos.ClipRepository().Delete(ctx,
		specification.ByID(clipID),
		specification.OwnedBy(userID),
	); err != nil {
		return err
	}

	s.notifyChange(ctx, userID, events.TypeClipDeleted, clipID)
	return nil
}

// List returns all of the user's clips, newest first.
func (s *clipService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Clip, error) {
	repos := s.uowFactory.Repositories()
	clips, err := repos.ClipRepository().FindAll(ctx,
		specification.OwnedBy(userID),
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToEntities(clips), nil
}

func (s *clipService) notifyChange(ctx context.Context, userID uuid.UUID, eventType string, clipID uuid.UUID) {
	if err := s.changeFeed.PublishChange(userID, dto.CollectionClips); err != nil {
		s.logger.Warn("clip", "change feed publish failed", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	_ = s.publisher.PublishEvent(ctx, events.NewBaseEvent(eventType, map[string]interface{}{
		"user_id": userID.String(),
		"clip_id": clipID.String(),
	}))
}
