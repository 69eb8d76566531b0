package service

import (
	"context"

	"clipnote-be/internal/pkg/logger"
	"clipnote-be/pkg/events"
	"clipnote-be/pkg/nats"
)

// IPublisherService publishes domain events to the message broker.
// When the broker is unavailable the service degrades to a no-op so
// the request path never depends on it.
type IPublisherService interface {
	PublishEvent(ctx context.Context, event events.Event) error
}

type publisherService struct {
	publisher *nats.Publisher
	logger    logger.ILogger
}

func NewPublisherService(publisher *nats.Publisher, logger logger.ILogger) IPublisherService {
	return &publisherService{
		publisher: publisher,
		logger:    logger,
	}
}

func (s *publisherService) PublishEvent(ctx context.Context, event events.Event) error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publisher", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
