package post

import (
	"context"

	"ripple/internal/core/post"
	userPort "ripple/internal/ports/user"
)

// PostRepository is the outbound port for storing and retrieving posts.
// ToggleLike is an atomic remove-if-present / add-if-absent keyed by
// (post_id, user_id), so two racing toggles cannot produce a duplicate like.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	ListFeed(ctx context.Context, skip, limit int) ([]*post.Post, error)
	Count(ctx context.Context) (int64, error)
	ToggleLike(ctx context.Context, like *post.Like) (bool, error)
	FindLikesByPostID(ctx context.Context, postID string) ([]post.Like, error)
	AddComment(ctx context.Context, comment *post.Comment) (*post.Comment, error)
	Delete(ctx context.Context, id string) error
}

// DTOs for the use cases
type PostDTO struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Username  string            `json:"username"`
	Text      string            `json:"text"`
	Image     string            `json:"image"`
	Likes     []LikeDTO         `json:"likes"`
	Comments  []CommentDTO      `json:"comments"`
	User      *userPort.UserDTO `json:"user,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

type LikeDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type CommentDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type FeedDTO struct {
	Posts       []*PostDTO `json:"posts"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	TotalPosts  int64      `json:"totalPosts"`
}

type LikeResultDTO struct {
	Message string    `json:"message"`
	Likes   []LikeDTO `json:"likes"`
}
