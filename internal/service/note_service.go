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

type INoteService interface {
	Create(ctx context.Context, userID uuid.UUID, text string) (*entity.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, text string) (*entity.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Note, error)
}

type noteService struct {
	uowFactory unitofwork.UnitOfWorkFactory
	mapper     *mapper.NoteMapper
	changeFeed IChangeFeedService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.UnitOfWorkFactory,
	changeFeed IChangeFeedService,
	publisher IPublisherService,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		mapper:     mapper.NewNoteMapper(),
		changeFeed: changeFeed,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create stores a trimmed note. Empty or whitespace-only text is
// rejected before any storage call happens.
func (s *noteService) Create(ctx context.Context, userID uuid.UUID, text string) (*entity.Note, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}

	note := &model.Note{
		Id:     uuid.New(),
		Text:   trimmed,
		UserId: userID,
	}

	repos := s.uowFactory.Repositories()
	if err := repos.NoteRepository().Create(ctx, note); err != nil {
		s.logger.Error("note", "failed to create note", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	s.notifyChange(ctx, userID, events.TypeNoteCreated, note.Id)
	return s.mapper.ToEntity(note), nil
}

// Update replaces a note's text. The lookup is scoped to the owner,
// so editing another user's note behaves like editing a missing one.
func (s *noteService) Update(ctx context.Context, userID, noteID uuid.UUID, text string) (*entity.Note, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}

	repos := s.uowFactory.Repositories()
	note, err := repos.NoteRepository().FindOne(ctx,
		specification.ByID(noteID),
		specification.OwnedBy(userID),
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}

	note.Text = trimmed
	if err := repos.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, userID, events.TypeNoteUpdated, note.Id)
	return s.mapper.ToEntity(note), nil
}

// Delete removes a note by id. Deleting an id that no longer exists
// succeeds; concurrent deletes from two tabs must not error.
func (s *noteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	repos := s.uowFactory.Repositories()
	if err := repos.NoteRepository().Delete(ctx,
		specification.ByID(noteID),
		specification.OwnedBy(userID),
	); err != nil {
		return err
	}

	s.notifyChange(ctx, userID, events.TypeNoteDeleted, noteID)
	return nil
}

// List returns all of the user's notes, newest first.
func (s *noteService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Note, error) {
	repos := s.uowFactory.Repositories()
	notes, err := repos.NoteRepository().FindAll(ctx,
		specification.OwnedBy(userID),
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToEntities(notes), nil
}

func (s *noteService) notifyChange(ctx context.Context, userID uuid.UUID, eventType string, noteID uuid.UUID) {
	if err := s.changeFeed.PublishChange(userID, dto.CollectionNotes); err != nil {
		s.logger.Warn("note", "change feed publish failed", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	_ = s.publisher.PublishEvent(ctx, events.NewBaseEvent(eventType, map[string]interface{}{
		"user_id": userID.String(),
		"note_id": noteID.String(),
	}))
}
