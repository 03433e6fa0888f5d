package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recipehub/internal/cache"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations.
type UserService interface {
	GetUser(ctx context.Context, id int) (*model.User, error)
	DeleteUser(ctx context.Context, username, password string) error
	SearchUsers(ctx context.Context, query string) ([]int, error)
	SetProfilePic(ctx context.Context, username, path string) error
	SetBanner(ctx context.Context, username, path string) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id int) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id int) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// DeleteUser removes the account after checking its password. Everything
// the user owns goes with it.
func (s *userService) DeleteUser(ctx context.Context, username, password string) error {
	user, err := authenticate(ctx, s.repo, username, password)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}

func (s *userService) SearchUsers(ctx context.Context, query string) ([]int, error) {
	if err := required("search", query); err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, query)
}

func (s *userService) SetProfilePic(ctx context.Context, username, path string) error {
	return s.updateByUsername(ctx, username, func(id int) error {
		return s.repo.UpdateProfilePic(ctx, id, path)
	})
}

func (s *userService) SetBanner(ctx context.Context, username, path string) error {
	return s.updateByUsername(ctx, username, func(id int) error {
		return s.repo.UpdateBanner(ctx, id, path)
	})
}

func (s *userService) updateByUsername(ctx context.Context, username string, update func(id int) error) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := update(user.ID); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}
