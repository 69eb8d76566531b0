package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type NoteItem struct {
	Id        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
