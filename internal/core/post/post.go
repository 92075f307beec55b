package post

import (
	"time"

	"github.com/gofrs/uuid"

	"ripple/internal/core/user"
)

type Post struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	User      user.User `gorm:"foreignkey:UserID"`
	Username  string    `gorm:"not null"` // display name snapshot, never re-synced
	Text      string    `gorm:"type:text"`
	Image     string    `gorm:"type:varchar(512)"`
	Likes     []Like    `gorm:"foreignkey:PostID;constraint:OnDelete:CASCADE"`
	Comments  []Comment `gorm:"foreignkey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Like holds one user's like on one post. The unique index keeps a user
// from appearing twice even when two toggles race.
type Like struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_post_user"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_post_user"`
	Username  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `gorm:"type:char(36);not null"`
	Username  string    `gorm:"not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
