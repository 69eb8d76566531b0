package entity

import (
	"time"

	"github.com/google/uuid"
)

type Clip struct {
	Id        uuid.UUID
	Url       string
	Title     string
	Note      string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
