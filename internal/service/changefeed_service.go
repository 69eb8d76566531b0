package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/logger"
)

// IChangeFeedService is the in-process feed of collection changes.
// Every mutation publishes one message; the sync service consumes the
// feed and pushes fresh snapshots to subscribed clients.
type IChangeFeedService interface {
	PublishChange(userID uuid.UUID, collection string) error
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
	Close() error
}

type changeFeedService struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewChangeFeedService(pubSub *gochannel.GoChannel, topic string, logger logger.ILogger) IChangeFeedService {
	return &changeFeedService{
		pubSub: pubSub,
		topic:  topic,
		logger: logger,
	}
}

func (s *changeFeedService) PublishChange(userID uuid.UUID, collection string) error {
	payload, err := json.Marshal(dto.ChangedMessage{
		UserId:     userID,
		Collection: collection,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.pubSub.Publish(s.topic, msg); err != nil {
		s.logger.Error("changefeed", "failed to publish change", map[string]interface{}{
			"user_id":    userID.String(),
			"collection": collection,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func (s *changeFeedService) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.pubSub.Subscribe(ctx, s.topic)
}

func (s *changeFeedService) Close() error {
	return s.pubSub.Close()
}
