package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

// FollowRepository defines follow-edge persistence operations.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID int) (bool, error)
	Unfollow(ctx context.Context, followerID, followedID int) (int64, error)
	IsFollowing(ctx context.Context, followerID, followedID int) (bool, error)
	CountFollowers(ctx context.Context, userID int) (int64, error)
	FollowersOf(ctx context.Context, userID int) ([]int, error)
	FollowingOf(ctx context.Context, userID int) ([]int, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge and reports whether it was new.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID int) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Follow{FollowerID: followerID, FollowedID: followedID})
	if res.Error != nil {
		return false, translate(res.Error, apperrors.ErrUserNotFound)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID int) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrUserNotFound)
	}
	return res.RowsAffected, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, translate(err, apperrors.ErrUserNotFound)
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID int) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, translate(err, apperrors.ErrUserNotFound)
	}
	return count, nil
}

// FollowersOf lists ids of users following userID.
func (r *followRepository) FollowersOf(ctx context.Context, userID int) ([]int, error) {
	return r.pluck(ctx, "follower_id", "followed_id = ?", userID)
}

// FollowingOf lists ids of users userID follows.
func (r *followRepository) FollowingOf(ctx context.Context, userID int) ([]int, error) {
	return r.pluck(ctx, "followed_id", "follower_id = ?", userID)
}

func (r *followRepository) pluck(ctx context.Context, column, where string, userID int) ([]int, error) {
	ids := make([]int, 0)
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where(where, userID).
		Order("created_at").
		Pluck(column, &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return ids, nil
}
