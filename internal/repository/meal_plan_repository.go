package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

// MealPlanRepository defines meal-plan persistence operations.
type MealPlanRepository interface {
	Create(ctx context.Context, entry *model.MealPlanEntry) error
	Remove(ctx context.Context, userID, recipeID int, day string) (int64, error)
	ListByUser(ctx context.Context, userID int) ([]model.MealPlanEntry, error)
}

type mealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal-plan repository.
func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) Create(ctx context.Context, entry *model.MealPlanEntry) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error, apperrors.ErrRecipeNotFound)
}

// Remove deletes every entry of recipeID on day for userID.
func (r *mealPlanRepository) Remove(ctx context.Context, userID, recipeID int, day string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND day_of_week = ?", userID, recipeID, day).
		Delete(&model.MealPlanEntry{})
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrRecipeNotFound)
	}
	return res.RowsAffected, nil
}

// ListByUser returns the plan ordered by weekday, then meal, then insertion.
func (r *mealPlanRepository) ListByUser(ctx context.Context, userID int) ([]model.MealPlanEntry, error) {
	entries := make([]model.MealPlanEntry, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&entries).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := model.WeekdayIndex(entries[i].DayOfWeek), model.WeekdayIndex(entries[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return entries[i].MealType.Order() < entries[j].MealType.Order()
	})
	return entries, nil
}
