package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClipRequest struct {
	Url   string `json:"url" validate:"required"`
	Title string `json:"title"`
	Note  string `json:"note"`
}

type CreateClipResponse struct {
	Id uuid.UUID `json:"id"`
}

type ClipItem struct {
	Id        uuid.UUID `json:"id"`
	Url       string    `json:"url"`
	Title     string    `json:"title"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
