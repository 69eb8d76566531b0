package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/specification"
)

type recordingSender struct {
	frames map[uuid.UUID][][]byte
}

func newRecordingSender() *recordingSender {
	return &recordingSender{frames: make(map[uuid.UUID][][]byte)}
}

func (r *recordingSender) Send(userID uuid.UUID, data []byte) {
	r.frames[userID] = append(r.frames[userID], data)
}

type fakeClipRepo struct {
	findAllResult []*model.Clip
}

func (f *fakeClipRepo) Create(context.Context, *model.Clip) error { return nil }
func (f *fakeClipRepo) Update(context.Context, *model.Clip) error { return nil }
func (f *fakeClipRepo) Delete(context.Context, ...specification.Specification) error {
	return nil
}
func (f *fakeClipRepo) FindOne(context.Context, ...specification.Specification) (*model.Clip, error) {
	return nil, nil
}
func (f *fakeClipRepo) FindAll(context.Context, ...specification.Specification) ([]*model.Clip, error) {
	return f.findAllResult, nil
}
func (f *fakeClipRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(f.findAllResult)), nil
}

type fakeSyncRepoFactory struct {
	notes *fakeNoteRepo
	clips *fakeClipRepo
}

func (f *fakeSyncRepoFactory) UserRepository() contract.UserRepository         { return nil }
func (f *fakeSyncRepoFactory) NoteRepository() contract.NoteRepository         { return f.notes }
func (f *fakeSyncRepoFactory) ClipRepository() contract.ClipRepository         { return f.clips }
func (f *fakeSyncRepoFactory) ActivityRepository() contract.ActivityRepository { return nil }

func newSyncServiceForTest(noteRepo *fakeNoteRepo) (ISyncService, *recordingSender) {
	factory := &fakeSyncRepoFactory{notes: noteRepo, clips: &fakeClipRepo{}}
	uowFactory := &fakeUOWFactory{factory: factory}
	feed := &fakeChangeFeed{}
	pub := &fakePublisher{}
	noteSvc := NewNoteService(uowFactory, feed, pub, noopLogger{})
	clipSvc := NewClipService(uowFactory, feed, pub, noopLogger{})

	sender := newRecordingSender()
	return NewSyncService(noteSvc, clipSvc, feed, sender, noopLogger{}), sender
}

func TestBuildSnapshotEncodesNotes(t *testing.T) {
	userID := uuid.New()
	older := &model.Note{Id: uuid.New(), Text: "older", UserId: userID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.Note{Id: uuid.New(), Text: "newer", UserId: userID, CreatedAt: time.Now()}

	// The repository returns rows already ordered newest first; the
	// snapshot must preserve that order.
	repo := &fakeNoteRepo{findAllResult: []*model.Note{newer, older}}
	svc, _ := newSyncServiceForTest(repo)

	raw, err := svc.BuildSnapshot(context.Background(), userID, dto.CollectionNotes)
	require.NoError(t, err)

	var frame dto.NoteSnapshotFrame
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, dto.FrameSnapshot, frame.Type)
	assert.Equal(t, dto.CollectionNotes, frame.Collection)
	require.Len(t, frame.Items, 2)
	assert.Equal(t, "newer", frame.Items[0].Text)
	assert.Equal(t, "older", frame.Items[1].Text)
}

func TestBuildSnapshotEmptyCollection(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc, _ := newSyncServiceForTest(repo)

	raw, err := svc.BuildSnapshot(context.Background(), uuid.New(), dto.CollectionNotes)
	require.NoError(t, err)

	// An empty collection still serializes as [], never null, so the
	// client can render an empty dashboard.
	var frame struct {
		Items json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, "[]", string(frame.Items))
}

func TestBuildSnapshotUnknownCollection(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc, _ := newSyncServiceForTest(repo)

	_, err := svc.BuildSnapshot(context.Background(), uuid.New(), "bookmarks")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPushInitialFailedQueryStillResolvesLoading(t *testing.T) {
	// A notes query that the store rejects (permission denial, network
	// loss) must still produce a frame, or the client stays loading.
	repo := &fakeNoteRepo{findAllErr: errors.New("permission denied")}
	svc, _ := newSyncServiceForTest(repo)

	var pushed [][]byte
	svc.PushInitial(context.Background(), uuid.New(), func(data []byte) {
		pushed = append(pushed, data)
	})

	require.Len(t, pushed, 2)

	var notesFrame dto.NoteSnapshotFrame
	require.NoError(t, json.Unmarshal(pushed[0], &notesFrame))
	assert.Equal(t, dto.FrameSnapshot, notesFrame.Type)
	assert.Equal(t, dto.CollectionNotes, notesFrame.Collection)
	assert.True(t, notesFrame.Error)
	assert.Empty(t, notesFrame.Items)

	var clipsFrame dto.ClipSnapshotFrame
	require.NoError(t, json.Unmarshal(pushed[1], &clipsFrame))
	assert.Equal(t, dto.CollectionClips, clipsFrame.Collection)
	assert.False(t, clipsFrame.Error)
}

func TestHealthySnapshotCarriesNoErrorFlag(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc, _ := newSyncServiceForTest(repo)

	raw, err := svc.BuildSnapshot(context.Background(), uuid.New(), dto.CollectionNotes)
	require.NoError(t, err)

	var frame dto.NoteSnapshotFrame
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.False(t, frame.Error)
}

func TestPushInitialSendsBothCollections(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc, _ := newSyncServiceForTest(repo)

	var pushed [][]byte
	svc.PushInitial(context.Background(), uuid.New(), func(data []byte) {
		pushed = append(pushed, data)
	})

	require.Len(t, pushed, 2)
	collections := make([]string, 0, 2)
	for _, raw := range pushed {
		var frame struct {
			Collection string `json:"collection"`
		}
		require.NoError(t, json.Unmarshal(raw, &frame))
		collections = append(collections, frame.Collection)
	}
	assert.ElementsMatch(t, []string{dto.CollectionNotes, dto.CollectionClips}, collections)
}
