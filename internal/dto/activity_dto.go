package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityItem struct {
	Id        uuid.UUID  `json:"id"`
	TypeCode  string     `json:"type_code"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ActivityListResponse struct {
	Activities []ActivityItem `json:"activities"`
	Total      int64          `json:"total"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
