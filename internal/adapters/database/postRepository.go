package database

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ripple/internal/core/errs"
	"ripple/internal/core/post"
)

// PostRepositoryDatabase implements the PostRepository port on GORM.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(errs.ErrNotFound, id)
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListFeed(ctx context.Context, skip, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := repo.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ToggleLike removes the caller's like when one exists and inserts it
// otherwise. Each statement is atomic and the unique (post_id, user_id) index
// keeps concurrent toggles from producing a duplicate row.
func (repo *PostRepositoryDatabase) ToggleLike(ctx context.Context, like *post.Like) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", like.PostID, like.UserID).
		Delete(&post.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	if err := repo.db.WithContext(ctx).Create(like).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (repo *PostRepositoryDatabase) FindLikesByPostID(ctx context.Context, postID string) ([]post.Like, error) {
	var likes []post.Like
	err := repo.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (repo *PostRepositoryDatabase) AddComment(ctx context.Context, comment *post.Comment) (*post.Comment, error) {
	if err := repo.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the post and its dependent rows in one transaction.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&post.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&post.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&post.Post{}).Error
	})
}
