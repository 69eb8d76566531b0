package dashboard

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/service"
)

const commandTimeout = 10 * time.Second

// EditTarget is the single record currently being edited plus its
// uncommitted buffer. A nil target means nothing is in edit mode.
type EditTarget struct {
	NoteId uuid.UUID
	Buffer string
}

// Controller drives one dashboard connection. It keeps read-only
// mirrors of the user's collections, applies snapshot frames to them,
// and turns inbound command frames into service calls. At most one
// note is in edit mode at a time.
type Controller struct {
	userID  uuid.UUID
	noteSvc service.INoteService
	clipSvc service.IClipService
	reply   func(data []byte)
	logger  logger.ILogger

	mu      sync.Mutex
	notes   []dto.NoteItem
	clips   []dto.ClipItem
	editing *EditTarget
}

func NewController(
	userID uuid.UUID,
	noteSvc service.INoteService,
	clipSvc service.IClipService,
	reply func(data []byte),
	logger logger.ILogger,
) *Controller {
	return &Controller{
		userID:  userID,
		noteSvc: noteSvc,
		clipSvc: clipSvc,
		reply:   reply,
		logger:  logger,
	}
}

// ObserveFrame applies snapshot frames to the mirrors. Each snapshot
// replaces the collection wholesale; there is no incremental merge.
func (c *Controller) ObserveFrame(data []byte) {
	var head struct {
		Type       string `json:"type"`
		Collection string `json:"collection"`
	}
	if err := json.Unmarshal(data, &head); err != nil || head.Type != dto.FrameSnapshot {
		return
	}

	switch head.Collection {
	case dto.CollectionNotes:
		var frame dto.NoteSnapshotFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return
		}
		c.mu.Lock()
		c.notes = frame.Items
		c.mu.Unlock()
	case dto.CollectionClips:
		var frame dto.ClipSnapshotFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return
		}
		c.mu.Lock()
		c.clips = frame.Items
		c.mu.Unlock()
	}
}

// HandleCommand dispatches one inbound command frame.
func (c *Controller) HandleCommand(raw []byte) {
	var cmd dto.Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		c.sendError("", "malformed command")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch cmd.Action {
	case dto.ActionAddNote:
		c.addNote(ctx, cmd)
	case dto.ActionBeginEdit:
		c.beginEdit(cmd)
	case dto.ActionEditBuffer:
		c.editBuffer(cmd)
	case dto.ActionSaveEdit:
		c.saveEdit(ctx)
	case dto.ActionCancelEdit:
		c.cancelEdit()
	case dto.ActionDeleteNote:
		c.deleteNote(ctx, cmd)
	case dto.ActionAddClip:
		c.addClip(ctx, cmd)
	case dto.ActionDeleteClip:
		c.deleteClip(ctx, cmd)
	default:
		c.sendError(cmd.Action, "unknown action")
	}
}

// addNote ignores empty or whitespace-only text without touching the
// store.
func (c *Controller) addNote(ctx context.Context, cmd dto.Command) {
	if strings.TrimSpace(cmd.Text) == "" {
		return
	}
	if _, err := c.noteSvc.Create(ctx, c.userID, cmd.Text); err != nil {
		c.sendError(cmd.Action, "could not save note")
	}
}

// beginEdit enters edit mode for the given note, seeding the buffer
// with its current text. Beginning an edit while another note is in
// edit mode discards that note's buffer.
func (c *Controller) beginEdit(cmd dto.Command) {
	id, err := uuid.Parse(cmd.Id)
	if err != nil {
		c.sendError(cmd.Action, "invalid id")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.notes {
		if n.Id == id {
			c.editing = &EditTarget{NoteId: id, Buffer: n.Text}
			return
		}
	}
	// Unknown id: leave edit state as it was.
}

func (c *Controller) editBuffer(cmd dto.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return
	}
	if cmd.Id != "" {
		id, err := uuid.Parse(cmd.Id)
		if err != nil || id != c.editing.NoteId {
			return
		}
	}
	c.editing.Buffer = cmd.Text
}

// saveEdit commits the buffer and always leaves edit mode, matching
// the dashboard behavior of closing the editor even when the buffer
// is blank.
func (c *Controller) saveEdit(ctx context.Context) {
	c.mu.Lock()
	target := c.editing
	c.editing = nil
	c.mu.Unlock()

	if target == nil {
		return
	}
	if strings.TrimSpace(target.Buffer) == "" {
		return
	}

	if _, err := c.noteSvc.Update(ctx, c.userID, target.NoteId, target.Buffer); err != nil {
		if err == service.ErrNotFound {
			c.sendError(dto.ActionSaveEdit, "note no longer exists")
			return
		}
		c.sendError(dto.ActionSaveEdit, "could not save changes")
	}
}

func (c *Controller) cancelEdit() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// deleteNote is idempotent: deleting an already-deleted note from a
// second tab is not an error.
func (c *Controller) deleteNote(ctx context.Context, cmd dto.Command) {
	id, err := uuid.Parse(cmd.Id)
	if err != nil {
		c.sendError(cmd.Action, "invalid id")
		return
	}
	if err := c.noteSvc.Delete(ctx, c.userID, id); err != nil {
		c.sendError(cmd.Action, "could not delete note")
	}
}

// addClip ignores an empty url; the service handles scheme
// normalization and the title fallback.
func (c *Controller) addClip(ctx context.Context, cmd dto.Command) {
	if strings.TrimSpace(cmd.Url) == "" {
		return
	}
	if _, err := c.clipSvc.Create(ctx, c.userID, cmd.Url, cmd.Title, cmd.Note); err != nil {
		c.sendError(cmd.Action, "could not save clip")
	}
}

func (c *Controller) deleteClip(ctx context.Context, cmd dto.Command) {
	id, err := uuid.Parse(cmd.Id)
	if err != nil {
		c.sendError(cmd.Action, "invalid id")
		return
	}
	if err := c.clipSvc.Delete(ctx, c.userID, id); err != nil {
		c.sendError(cmd.Action, "could not delete clip")
	}
}

func (c *Controller) sendError(action, message string) {
	frame, err := json.Marshal(dto.ErrorFrame{
		Type:    dto.FrameError,
		Action:  action,
		Message: message,
	})
	if err != nil {
		return
	}
	c.reply(frame)
}

// Notes returns a copy of the notes mirror.
func (c *Controller) Notes() []dto.NoteItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dto.NoteItem, len(c.notes))
	copy(out, c.notes)
	return out
}

// Clips returns a copy of the clips mirror.
func (c *Controller) Clips() []dto.ClipItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dto.ClipItem, len(c.clips))
	copy(out, c.clips)
	return out
}

// Editing returns the current edit target, or nil when not editing.
func (c *Controller) Editing() *EditTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	t := *c.editing
	return &t
}
