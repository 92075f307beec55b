package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name       string    `gorm:"not null"`
	Username   string    `gorm:"unique;not null"`
	ProfilePic string    `gorm:"type:varchar(512)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}
