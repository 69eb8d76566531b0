package service

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/internal/repository/unitofwork"
	"clipnote-be/pkg/events"
)

type fakeNoteRepo struct {
	created       []*model.Note
	updated       []*model.Note
	deleteCalls   int
	findOneResult *model.Note
	findAllResult []*model.Note
	findAllErr    error
}

func (f *fakeNoteRepo) Create(_ context.Context, note *model.Note) error {
	f.created = append(f.created, note)
	return nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *model.Note) error {
	f.updated = append(f.updated, note)
	return nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, _ ...specification.Specification) error {
	f.deleteCalls++
	return nil
}

func (f *fakeNoteRepo) FindOne(_ context.Context, _ ...specification.Specification) (*model.Note, error) {
	return f.findOneResult, nil
}

func (f *fakeNoteRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*model.Note, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	return f.findAllResult, nil
}

func (f *fakeNoteRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.findAllResult)), nil
}

type fakeRepoFactory struct {
	notes *fakeNoteRepo
}

func (f *fakeRepoFactory) UserRepository() contract.UserRepository         { return nil }
func (f *fakeRepoFactory) NoteRepository() contract.NoteRepository         { return f.notes }
func (f *fakeRepoFactory) ClipRepository() contract.ClipRepository         { return nil }
func (f *fakeRepoFactory) ActivityRepository() contract.ActivityRepository { return nil }

type fakeUOW struct {
	factory unitofwork.RepositoryFactory
}

func (f *fakeUOW) Begin(context.Context) (unitofwork.RepositoryFactory, error) {
	return f.factory, nil
}
func (f *fakeUOW) Commit() error   { return nil }
func (f *fakeUOW) Rollback() error { return nil }
func (f *fakeUOW) Do(_ context.Context, fn func(unitofwork.RepositoryFactory) error) error {
	return fn(f.factory)
}

type fakeUOWFactory struct {
	factory unitofwork.RepositoryFactory
}

func (f *fakeUOWFactory) New() unitofwork.UnitOfWork {
	return &fakeUOW{factory: f.factory}
}
func (f *fakeUOWFactory) Repositories() unitofwork.RepositoryFactory { return f.factory }

type fakeChangeFeed struct {
	published []string
}

func (f *fakeChangeFeed) PublishChange(_ uuid.UUID, collection string) error {
	f.published = append(f.published, collection)
	return nil
}

func (f *fakeChangeFeed) Subscribe(context.Context) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *fakeChangeFeed) Close() error { return nil }

type fakePublisher struct {
	events []events.Event
}

func (f *fakePublisher) PublishEvent(_ context.Context, event events.Event) error {
	f.events = append(f.events, event)
	return nil
}

func newNoteServiceForTest(repo *fakeNoteRepo) (INoteService, *fakeChangeFeed, *fakePublisher) {
	feed := &fakeChangeFeed{}
	pub := &fakePublisher{}
	svc := NewNoteService(
		&fakeUOWFactory{factory: &fakeRepoFactory{notes: repo}},
		feed,
		pub,
		noopLogger{},
	)
	return svc, feed, pub
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func TestNoteServiceCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("stores trimmed text", func(t *testing.T) {
		repo := &fakeNoteRepo{}
		svc, feed, _ := newNoteServiceForTest(repo)

		note, err := svc.Create(context.Background(), userID, "  hello world  ")
		require.NoError(t, err)
		assert.Equal(t, "hello world", note.Text)
		require.Len(t, repo.created, 1)
		assert.Equal(t, userID, repo.created[0].UserId)
		assert.Equal(t, []string{"notes"}, feed.published)
	})

	t.Run("whitespace only never reaches the store", func(t *testing.T) {
		repo := &fakeNoteRepo{}
		svc, feed, _ := newNoteServiceForTest(repo)

		_, err := svc.Create(context.Background(), userID, "   \n\t ")
		assert.ErrorIs(t, err, ErrEmptyText)
		assert.Empty(t, repo.created)
		assert.Empty(t, feed.published)
	})
}

func TestNoteServiceUpdate(t *testing.T) {
	userID := uuid.New()

	t.Run("missing note", func(t *testing.T) {
		repo := &fakeNoteRepo{findOneResult: nil}
		svc, _, _ := newNoteServiceForTest(repo)

		_, err := svc.Update(context.Background(), userID, uuid.New(), "new text")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, repo.updated)
	})

	t.Run("replaces text", func(t *testing.T) {
		noteID := uuid.New()
		repo := &fakeNoteRepo{findOneResult: &model.Note{Id: noteID, Text: "old", UserId: userID}}
		svc, _, _ := newNoteServiceForTest(repo)

		note, err := svc.Update(context.Background(), userID, noteID, "  new text  ")
		require.NoError(t, err)
		assert.Equal(t, "new text", note.Text)
		require.Len(t, repo.updated, 1)
	})
}

func TestNoteServiceDeleteIsIdempotent(t *testing.T) {
	userID := uuid.New()
	noteID := uuid.New()
	repo := &fakeNoteRepo{}
	svc, feed, _ := newNoteServiceForTest(repo)

	// Two deletes of the same id, as when two tabs race. Neither may
	// error even though the row is gone after the first.
	require.NoError(t, svc.Delete(context.Background(), userID, noteID))
	require.NoError(t, svc.Delete(context.Background(), userID, noteID))
	assert.Equal(t, 2, repo.deleteCalls)
	assert.Equal(t, []string{"notes", "notes"}, feed.published)
}

func TestNoteServicePublishesEvents(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc, _, pub := newNoteServiceForTest(repo)

	_, err := svc.Create(context.Background(), uuid.New(), "text")
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeNoteCreated, pub.events[0].EventType())
}
