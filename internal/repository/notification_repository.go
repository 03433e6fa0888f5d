package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Notification, error)
	ListIDsByRecipient(ctx context.Context, userID int) ([]uint, error)
	ListByRecipient(ctx context.Context, userID int) ([]model.Notification, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a notification; both user references must exist.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error, apperrors.ErrUserNotFound)
}

func (r *notificationRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, apperrors.ErrNotificationNotFound)
	}
	return count > 0, nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, translate(err, apperrors.ErrNotificationNotFound)
	}
	return &n, nil
}

func (r *notificationRepository) ListIDsByRecipient(ctx context.Context, userID int) ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrNotificationNotFound)
	}
	return ids, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, userID int) ([]model.Notification, error) {
	notifications := make([]model.Notification, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&notifications).Error; err != nil {
		return nil, translate(err, apperrors.ErrNotificationNotFound)
	}
	return notifications, nil
}

// Delete removes a notification. Reading a notification is deleting it.
func (r *notificationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notification{})
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrNotificationNotFound)
	}
	return res.RowsAffected, nil
}
