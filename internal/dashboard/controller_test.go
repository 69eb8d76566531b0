package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/entity"
	"clipnote-be/internal/service"
)

type fakeNoteService struct {
	createCalls []string
	updateCalls map[uuid.UUID]string
	deleteCalls []uuid.UUID
	updateErr   error
}

func (f *fakeNoteService) Create(_ context.Context, _ uuid.UUID, text string) (*entity.Note, error) {
	f.createCalls = append(f.createCalls, text)
	return &entity.Note{Id: uuid.New(), Text: text}, nil
}

func (f *fakeNoteService) Update(_ context.Context, _ uuid.UUID, noteID uuid.UUID, text string) (*entity.Note, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateCalls == nil {
		f.updateCalls = make(map[uuid.UUID]string)
	}
	f.updateCalls[noteID] = text
	return &entity.Note{Id: noteID, Text: text}, nil
}

func (f *fakeNoteService) Delete(_ context.Context, _ uuid.UUID, noteID uuid.UUID) error {
	f.deleteCalls = append(f.deleteCalls, noteID)
	return nil
}

func (f *fakeNoteService) List(context.Context, uuid.UUID) ([]*entity.Note, error) {
	return nil, nil
}

type fakeClipService struct {
	createCalls []string
	deleteCalls []uuid.UUID
}

func (f *fakeClipService) Create(_ context.Context, _ uuid.UUID, url, title, note string) (*entity.Clip, error) {
	f.createCalls = append(f.createCalls, url)
	return &entity.Clip{Id: uuid.New(), Url: url, Title: title, Note: note}, nil
}

func (f *fakeClipService) Delete(_ context.Context, _ uuid.UUID, clipID uuid.UUID) error {
	f.deleteCalls = append(f.deleteCalls, clipID)
	return nil
}

func (f *fakeClipService) List(context.Context, uuid.UUID) ([]*entity.Clip, error) {
	return nil, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type testHarness struct {
	ctrl    *Controller
	noteSvc *fakeNoteService
	clipSvc *fakeClipService
	replies [][]byte
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		noteSvc: &fakeNoteService{},
		clipSvc: &fakeClipService{},
	}
	h.ctrl = NewController(uuid.New(), h.noteSvc, h.clipSvc, func(data []byte) {
		h.replies = append(h.replies, data)
	}, noopLogger{})
	return h
}

func (h *testHarness) command(t *testing.T, cmd dto.Command) {
	t.Helper()
	raw, err := json.Marshal(cmd)
	require.NoError(t, err)
	h.ctrl.HandleCommand(raw)
}

func (h *testHarness) pushNotes(t *testing.T, items ...dto.NoteItem) {
	t.Helper()
	frame, err := json.Marshal(dto.NoteSnapshotFrame{
		Type:       dto.FrameSnapshot,
		Collection: dto.CollectionNotes,
		Items:      items,
	})
	require.NoError(t, err)
	h.ctrl.ObserveFrame(frame)
}

func (h *testHarness) lastError(t *testing.T) *dto.ErrorFrame {
	t.Helper()
	if len(h.replies) == 0 {
		return nil
	}
	var frame dto.ErrorFrame
	require.NoError(t, json.Unmarshal(h.replies[len(h.replies)-1], &frame))
	return &frame
}

func TestSnapshotReplacesMirror(t *testing.T) {
	h := newHarness(t)

	first := dto.NoteItem{Id: uuid.New(), Text: "first", CreatedAt: time.Now()}
	h.pushNotes(t, first)
	require.Len(t, h.ctrl.Notes(), 1)

	// The next snapshot is not merged, it replaces the mirror wholesale.
	second := dto.NoteItem{Id: uuid.New(), Text: "second", CreatedAt: time.Now()}
	h.pushNotes(t, second)
	notes := h.ctrl.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, second.Id, notes[0].Id)
}

func TestAddNoteIgnoresWhitespace(t *testing.T) {
	h := newHarness(t)

	h.command(t, dto.Command{Action: dto.ActionAddNote, Text: "   \t  "})
	assert.Empty(t, h.noteSvc.createCalls)
	assert.Empty(t, h.replies)

	h.command(t, dto.Command{Action: dto.ActionAddNote, Text: "real note"})
	assert.Equal(t, []string{"real note"}, h.noteSvc.createCalls)
}

func TestBeginEditSeedsBuffer(t *testing.T) {
	h := newHarness(t)
	note := dto.NoteItem{Id: uuid.New(), Text: "original", CreatedAt: time.Now()}
	h.pushNotes(t, note)

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: note.Id.String()})
	target := h.ctrl.Editing()
	require.NotNil(t, target)
	assert.Equal(t, note.Id, target.NoteId)
	assert.Equal(t, "original", target.Buffer)
}

func TestSwitchingEditTargetDiscardsBuffer(t *testing.T) {
	h := newHarness(t)
	first := dto.NoteItem{Id: uuid.New(), Text: "first", CreatedAt: time.Now()}
	second := dto.NoteItem{Id: uuid.New(), Text: "second", CreatedAt: time.Now()}
	h.pushNotes(t, first, second)

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: first.Id.String()})
	h.command(t, dto.Command{Action: dto.ActionEditBuffer, Text: "half-typed change"})

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: second.Id.String()})
	target := h.ctrl.Editing()
	require.NotNil(t, target)
	assert.Equal(t, second.Id, target.NoteId)
	assert.Equal(t, "second", target.Buffer)

	// The first note's half-typed buffer must be gone: re-entering its
	// edit mode starts from the stored text again.
	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: first.Id.String()})
	target = h.ctrl.Editing()
	require.NotNil(t, target)
	assert.Equal(t, "first", target.Buffer)
}

func TestSaveEditCommitsAndExits(t *testing.T) {
	h := newHarness(t)
	note := dto.NoteItem{Id: uuid.New(), Text: "original", CreatedAt: time.Now()}
	h.pushNotes(t, note)

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: note.Id.String()})
	h.command(t, dto.Command{Action: dto.ActionEditBuffer, Text: "edited"})
	h.command(t, dto.Command{Action: dto.ActionSaveEdit})

	assert.Equal(t, "edited", h.noteSvc.updateCalls[note.Id])
	assert.Nil(t, h.ctrl.Editing())
}

func TestSaveEditWithBlankBufferExitsWithoutSaving(t *testing.T) {
	h := newHarness(t)
	note := dto.NoteItem{Id: uuid.New(), Text: "original", CreatedAt: time.Now()}
	h.pushNotes(t, note)

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: note.Id.String()})
	h.command(t, dto.Command{Action: dto.ActionEditBuffer, Text: "   "})
	h.command(t, dto.Command{Action: dto.ActionSaveEdit})

	assert.Empty(t, h.noteSvc.updateCalls)
	assert.Nil(t, h.ctrl.Editing())
	assert.Empty(t, h.replies)
}

func TestSaveEditForDeletedNoteSurfacesError(t *testing.T) {
	h := newHarness(t)
	note := dto.NoteItem{Id: uuid.New(), Text: "original", CreatedAt: time.Now()}
	h.pushNotes(t, note)
	h.noteSvc.updateErr = service.ErrNotFound

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: note.Id.String()})
	h.command(t, dto.Command{Action: dto.ActionSaveEdit})

	frame := h.lastError(t)
	require.NotNil(t, frame)
	assert.Equal(t, dto.FrameError, frame.Type)
	assert.Equal(t, dto.ActionSaveEdit, frame.Action)
	assert.Nil(t, h.ctrl.Editing())
}

func TestCancelEdit(t *testing.T) {
	h := newHarness(t)
	note := dto.NoteItem{Id: uuid.New(), Text: "original", CreatedAt: time.Now()}
	h.pushNotes(t, note)

	h.command(t, dto.Command{Action: dto.ActionBeginEdit, Id: note.Id.String()})
	h.command(t, dto.Command{Action: dto.ActionCancelEdit})

	assert.Nil(t, h.ctrl.Editing())
	assert.Empty(t, h.noteSvc.updateCalls)
}

func TestDeleteNote(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()

	h.command(t, dto.Command{Action: dto.ActionDeleteNote, Id: id.String()})
	assert.Equal(t, []uuid.UUID{id}, h.noteSvc.deleteCalls)

	h.command(t, dto.Command{Action: dto.ActionDeleteNote, Id: "not-a-uuid"})
	frame := h.lastError(t)
	require.NotNil(t, frame)
	assert.Equal(t, dto.FrameError, frame.Type)
}

func TestAddClipIgnoresEmptyURL(t *testing.T) {
	h := newHarness(t)

	h.command(t, dto.Command{Action: dto.ActionAddClip, Url: "  "})
	assert.Empty(t, h.clipSvc.createCalls)

	h.command(t, dto.Command{Action: dto.ActionAddClip, Url: "example.com", Title: "Example"})
	assert.Equal(t, []string{"example.com"}, h.clipSvc.createCalls)
}

func TestUnknownActionSurfacesError(t *testing.T) {
	h := newHarness(t)

	h.command(t, dto.Command{Action: "launch_missiles"})
	frame := h.lastError(t)
	require.NotNil(t, frame)
	assert.Equal(t, "unknown action", frame.Message)
}
