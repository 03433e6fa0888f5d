package service

import (
	"context"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

// NotificationService reads and acknowledges notifications.
type NotificationService interface {
	List(ctx context.Context, userID int) ([]model.Notification, error)
	Get(ctx context.Context, id uint) (*model.Notification, error)
	MarkRead(ctx context.Context, id uint) error
}

type notificationService struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository) NotificationService {
	return &notificationService{repo: repo, users: users}
}

func (s *notificationService) List(ctx context.Context, userID int) ([]model.Notification, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByRecipient(ctx, userID)
}

func (s *notificationService) Get(ctx context.Context, id uint) (*model.Notification, error) {
	return s.repo.FindByID(ctx, id)
}

// MarkRead deletes the notification; there is no retained read state.
func (s *notificationService) MarkRead(ctx context.Context, id uint) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
