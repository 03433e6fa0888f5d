package service

import (
	"context"
	"fmt"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/fanout"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

// SocialService manages the follow graph.
type SocialService interface {
	Follow(ctx context.Context, followerName, followedName string) error
	Unfollow(ctx context.Context, followerName, followedName string) (removed bool, err error)
	IsFollowing(ctx context.Context, followerName, followedName string) (bool, error)
	CountFollowers(ctx context.Context, userID int) (int64, error)
	Followers(ctx context.Context, userID int) ([]int, error)
	Following(ctx context.Context, userID int) ([]int, error)
}

type socialService struct {
	store     repository.Store
	fanout    *fanout.Engine
	publisher fanout.Publisher
}

// NewSocialService creates a new social service. publisher may be nil.
func NewSocialService(store repository.Store, engine *fanout.Engine, publisher fanout.Publisher) SocialService {
	return &socialService{store: store, fanout: engine, publisher: publisher}
}

// pair resolves both usernames, follower first.
func (s *socialService) pair(ctx context.Context, users repository.UserRepository, followerName, followedName string) (*model.User, *model.User, error) {
	if err := required("follower_username", followerName, "followed_username", followedName); err != nil {
		return nil, nil, err
	}
	follower, err := users.FindByUsername(ctx, followerName)
	if err != nil {
		return nil, nil, err
	}
	followed, err := users.FindByUsername(ctx, followedName)
	if err != nil {
		return nil, nil, err
	}
	return follower, followed, nil
}

// Follow records the edge and notifies the followed user the first time.
func (s *socialService) Follow(ctx context.Context, followerName, followedName string) error {
	var created []model.Notification
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		follower, followed, err := s.pair(ctx, tx.Users(), followerName, followedName)
		if err != nil {
			return err
		}
		if follower.ID == followed.ID {
			return apperrors.Validation("users cannot follow themselves")
		}

		isNew, err := tx.Follows().Follow(ctx, follower.ID, followed.ID)
		if err != nil {
			return fmt.Errorf("follow: %w", err)
		}
		if !isNew {
			return nil
		}
		created, err = s.fanout.OnFollowed(ctx, fanout.FromRepositories(tx), follower.ID, followed.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.fanout.Publish(ctx, s.publisher, created)
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerName, followedName string) (bool, error) {
	follower, followed, err := s.pair(ctx, s.store.Users(), followerName, followedName)
	if err != nil {
		return false, err
	}
	removed, err := s.store.Follows().Unfollow(ctx, follower.ID, followed.ID)
	if err != nil {
		return false, fmt.Errorf("unfollow: %w", err)
	}
	return removed > 0, nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerName, followedName string) (bool, error) {
	follower, followed, err := s.pair(ctx, s.store.Users(), followerName, followedName)
	if err != nil {
		return false, err
	}
	return s.store.Follows().IsFollowing(ctx, follower.ID, followed.ID)
}

func (s *socialService) CountFollowers(ctx context.Context, userID int) (int64, error) {
	if err := ensureUser(ctx, s.store.Users(), userID); err != nil {
		return 0, err
	}
	return s.store.Follows().CountFollowers(ctx, userID)
}

func (s *socialService) Followers(ctx context.Context, userID int) ([]int, error) {
	if err := ensureUser(ctx, s.store.Users(), userID); err != nil {
		return nil, err
	}
	return s.store.Follows().FollowersOf(ctx, userID)
}

func (s *socialService) Following(ctx context.Context, userID int) ([]int, error) {
	if err := ensureUser(ctx, s.store.Users(), userID); err != nil {
		return nil, err
	}
	return s.store.Follows().FollowingOf(ctx, userID)
}
