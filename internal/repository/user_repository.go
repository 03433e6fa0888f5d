package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfilePic(ctx context.Context, id int, path string) error
	UpdateBanner(ctx context.Context, id int, path string) error
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, query string) ([]int, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, apperrors.ErrUserNotFound)
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, translate(err, apperrors.ErrUserNotFound)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error, apperrors.ErrUserNotFound)
}

func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfilePic(ctx context.Context, id int, path string) error {
	return r.updateColumn(ctx, id, "profile_pic", path)
}

func (r *userRepository) UpdateBanner(ctx context.Context, id int, path string) error {
	return r.updateColumn(ctx, id, "banner", path)
}

func (r *userRepository) updateColumn(ctx context.Context, id int, column, value string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrUserNotFound)
	}
	if res.RowsAffected == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrUserNotFound
		}
	}
	return nil
}

// Delete removes the user; the store cascades to everything the user owns or references.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error, apperrors.ErrUserNotFound)
}

// Search returns ids of users whose username contains query, ordered by id.
func (r *userRepository) Search(ctx context.Context, query string) ([]int, error) {
	ids := make([]int, 0)
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username LIKE ? ESCAPE '!'", likePattern(query)).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return ids, nil
}
