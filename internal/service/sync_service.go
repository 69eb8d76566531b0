package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/logger"
)

// SnapshotSender fans a frame out to all of a user's connections.
type SnapshotSender interface {
	Send(userID uuid.UUID, data []byte)
}

// ISyncService keeps subscribed dashboards current. Every change feed
// message triggers a full re-query of the touched collection and a
// snapshot push; clients never see partial diffs.
type ISyncService interface {
	Run(ctx context.Context) error
	BuildSnapshot(ctx context.Context, userID uuid.UUID, collection string) ([]byte, error)
	PushInitial(ctx context.Context, userID uuid.UUID, enqueue func(data []byte))
}

type syncService struct {
	noteSvc    INoteService
	clipSvc    IClipService
	changeFeed IChangeFeedService
	sender     SnapshotSender
	logger     logger.ILogger
}

func NewSyncService(
	noteSvc INoteService,
	clipSvc IClipService,
	changeFeed IChangeFeedService,
	sender SnapshotSender,
	logger logger.ILogger,
) ISyncService {
	return &syncService{
		noteSvc:    noteSvc,
		clipSvc:    clipSvc,
		changeFeed: changeFeed,
		sender:     sender,
		logger:     logger,
	}
}

// Run consumes the change feed until ctx is cancelled.
func (s *syncService) Run(ctx context.Context) error {
	messages, err := s.changeFeed.Subscribe(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("sync", "change feed consumer started", nil)
	for msg := range messages {
		var change dto.ChangedMessage
		if err := json.Unmarshal(msg.Payload, &change); err != nil {
			s.logger.Warn("sync", "bad change feed message", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		frame, err := s.BuildSnapshot(ctx, change.UserId, change.Collection)
		if err != nil {
			s.logger.Error("sync", "snapshot rebuild failed", map[string]interface{}{
				"user_id":    change.UserId.String(),
				"collection": change.Collection,
				"error":      err.Error(),
			})
			// The client still gets a frame so it leaves its loading
			// state instead of waiting forever.
			if errFrame := errorSnapshot(change.Collection); errFrame != nil {
				s.sender.Send(change.UserId, errFrame)
			}
			msg.Ack()
			continue
		}

		s.sender.Send(change.UserId, frame)
		msg.Ack()
	}
	return nil
}

// BuildSnapshot re-queries the whole collection, newest first, and
// encodes it as one snapshot frame.
func (s *syncService) BuildSnapshot(ctx context.Context, userID uuid.UUID, collection string) ([]byte, error) {
	switch collection {
	case dto.CollectionNotes:
		notes, err := s.noteSvc.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		items := make([]dto.NoteItem, 0, len(notes))
		for _, n := range notes {
			items = append(items, dto.NoteItem{
				Id:        n.Id,
				Text:      n.Text,
				CreatedAt: n.CreatedAt,
			})
		}
		return json.Marshal(dto.NoteSnapshotFrame{
			Type:       dto.FrameSnapshot,
			Collection: dto.CollectionNotes,
			Items:      items,
		})
	case dto.CollectionClips:
		clips, err := s.clipSvc.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		items := make([]dto.ClipItem, 0, len(clips))
		for _, c := range clips {
			items = append(items, dto.ClipItem{
				Id:        c.Id,
				Url:       c.Url,
				Title:     c.Title,
				Note:      c.Note,
				CreatedAt: c.CreatedAt,
			})
		}
		return json.Marshal(dto.ClipSnapshotFrame{
			Type:       dto.FrameSnapshot,
			Collection: dto.CollectionClips,
			Items:      items,
		})
	default:
		return nil, ErrNotFound
	}
}

// PushInitial sends both collection snapshots to a freshly attached
// connection so the dashboard renders without waiting for a change.
func (s *syncService) PushInitial(ctx context.Context, userID uuid.UUID, enqueue func(data []byte)) {
	for _, collection := range []string{dto.CollectionNotes, dto.CollectionClips} {
		frame, err := s.BuildSnapshot(ctx, userID, collection)
		if err != nil {
			s.logger.Error("sync", "initial snapshot failed", map[string]interface{}{
				"user_id":    userID.String(),
				"collection": collection,
				"error":      err.Error(),
			})
			if errFrame := errorSnapshot(collection); errFrame != nil {
				enqueue(errFrame)
			}
			continue
		}
		enqueue(frame)
	}
}

// errorSnapshot is the empty, error-flagged frame pushed when a
// collection cannot be re-queried.
func errorSnapshot(collection string) []byte {
	var frame interface{}
	switch collection {
	case dto.CollectionNotes:
		frame = dto.NoteSnapshotFrame{
			Type:       dto.FrameSnapshot,
			Collection: collection,
			Items:      []dto.NoteItem{},
			Error:      true,
		}
	case dto.CollectionClips:
		frame = dto.ClipSnapshotFrame{
			Type:       dto.FrameSnapshot,
			Collection: collection,
			Items:      []dto.ClipItem{},
			Error:      true,
		}
	default:
		return nil
	}
	raw, err := json.Marshal(frame)
	if err != nil {
		return nil
	}
	return raw
}
