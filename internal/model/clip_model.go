package model

import (
	"time"

	"github.com/google/uuid"
)

// Clip stores a bookmarked link. Url is always schemed (https:// is
// prepended on create when missing) and Note is an empty string rather
// than NULL when the user left it blank.
type Clip struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Url       string    `gorm:"type:text;not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Note      string    `gorm:"type:text;not null;default:''"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Clip) TableName() string {
	return "clips"
}
