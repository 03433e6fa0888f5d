package service

import (
	"context"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/repository"
)

// SavedService manages users' saved recipes.
type SavedService interface {
	Save(ctx context.Context, username string, recipeID int) error
	Unsave(ctx context.Context, username string, recipeID int) (removed bool, err error)
	ListSaved(ctx context.Context, userID int) ([]int, error)
}

type savedService struct {
	store repository.Store
}

// NewSavedService creates a new saved-recipe service.
func NewSavedService(store repository.Store) SavedService {
	return &savedService{store: store}
}

func (s *savedService) resolve(ctx context.Context, username string, recipeID int) (int, error) {
	if err := required("username", username); err != nil {
		return 0, err
	}
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	exists, err := s.store.Recipes().Exists(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrRecipeNotFound
	}
	return user.ID, nil
}

// Save is idempotent.
func (s *savedService) Save(ctx context.Context, username string, recipeID int) error {
	userID, err := s.resolve(ctx, username, recipeID)
	if err != nil {
		return err
	}
	return s.store.SavedRecipes().Save(ctx, userID, recipeID)
}

func (s *savedService) Unsave(ctx context.Context, username string, recipeID int) (bool, error) {
	userID, err := s.resolve(ctx, username, recipeID)
	if err != nil {
		return false, err
	}
	removed, err := s.store.SavedRecipes().Unsave(ctx, userID, recipeID)
	return removed > 0, err
}

func (s *savedService) ListSaved(ctx context.Context, userID int) ([]int, error) {
	if err := ensureUser(ctx, s.store.Users(), userID); err != nil {
		return nil, err
	}
	return s.store.SavedRecipes().RecipesOf(ctx, userID)
}
