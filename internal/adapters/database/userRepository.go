package database

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ripple/internal/core/errs"
	"ripple/internal/core/user"
)

// UserRepositoryDatabase implements the UserRepository port on GORM.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(errs.ErrNotFound, id)
		}
		return nil, err
	}
	return &u, nil
}
