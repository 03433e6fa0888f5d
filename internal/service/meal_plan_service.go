package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

// MealPlanService manages weekly meal plans.
type MealPlanService interface {
	Add(ctx context.Context, userID, recipeID int, mealType, day string) (*model.MealPlanEntry, error)
	Remove(ctx context.Context, userID, recipeID int, day string) (removed bool, err error)
	List(ctx context.Context, userID int) ([]model.MealPlanEntry, error)
}

type mealPlanService struct {
	repo  repository.MealPlanRepository
	users repository.UserRepository
}

// NewMealPlanService creates a new meal plan service.
func NewMealPlanService(repo repository.MealPlanRepository, users repository.UserRepository) MealPlanService {
	return &mealPlanService{repo: repo, users: users}
}

func normalizeDay(day string) (string, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if model.WeekdayIndex(day) < 0 {
		return "", apperrors.Validation(fmt.Sprintf("day_of_week must be one of %s", strings.Join(model.Weekdays, ", ")))
	}
	return day, nil
}

// Add places a recipe on the plan. Unknown users or recipes are NotFound.
func (s *mealPlanService) Add(ctx context.Context, userID, recipeID int, mealType, day string) (*model.MealPlanEntry, error) {
	mt := model.MealType(strings.ToLower(strings.TrimSpace(mealType)))
	if !mt.Valid() {
		return nil, apperrors.Validation("meal_type must be one of breakfast, lunch, dinner, snack")
	}
	day, err := normalizeDay(day)
	if err != nil {
		return nil, err
	}

	entry := &model.MealPlanEntry{
		UserID:    userID,
		RecipeID:  recipeID,
		MealType:  mt,
		DayOfWeek: day,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *mealPlanService) Remove(ctx context.Context, userID, recipeID int, day string) (bool, error) {
	day, err := normalizeDay(day)
	if err != nil {
		return false, err
	}
	removed, err := s.repo.Remove(ctx, userID, recipeID, day)
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (s *mealPlanService) List(ctx context.Context, userID int) ([]model.MealPlanEntry, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}
