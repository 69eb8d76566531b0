package dto

import "github.com/google/uuid"

// Collection names carried on change feed messages and snapshot frames.
const (
	CollectionNotes = "notes"
	CollectionClips = "clips"
)

// ChangedMessage is published on the change feed whenever a user's
// collection is mutated. Consumers re-query the full collection.
type ChangedMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Collection string    `json:"collection"`
}

// Frame types pushed over the websocket.
const (
	FrameSnapshot = "snapshot"
	FrameActivity = "activity"
	FrameError    = "error"
)

// Error marks a snapshot whose re-query failed. The items are empty
// and the client should stop showing a loading state.
type NoteSnapshotFrame struct {
	Type       string     `json:"type"`
	Collection string     `json:"collection"`
	Items      []NoteItem `json:"items"`
	Error      bool       `json:"error,omitempty"`
}

type ClipSnapshotFrame struct {
	Type       string     `json:"type"`
	Collection string     `json:"collection"`
	Items      []ClipItem `json:"items"`
	Error      bool       `json:"error,omitempty"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

// Command is a client frame received over the websocket.
type Command struct {
	Action string `json:"action"`
	Id     string `json:"id,omitempty"`
	Text   string `json:"text,omitempty"`
	Url    string `json:"url,omitempty"`
	Title  string `json:"title,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Command actions understood by the dashboard controller.
const (
	ActionAddNote    = "add_note"
	ActionBeginEdit  = "begin_edit"
	ActionEditBuffer = "edit_buffer"
	ActionSaveEdit   = "save_edit"
	ActionCancelEdit = "cancel_edit"
	ActionDeleteNote = "delete_note"
	ActionAddClip    = "add_clip"
	ActionDeleteClip = "delete_clip"
)
