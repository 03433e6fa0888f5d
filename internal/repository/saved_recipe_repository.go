package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

// SavedRecipeRepository defines saved-recipe persistence operations.
type SavedRecipeRepository interface {
	Save(ctx context.Context, userID, recipeID int) error
	Unsave(ctx context.Context, userID, recipeID int) (int64, error)
	IsSaved(ctx context.Context, userID, recipeID int) (bool, error)
	RecipesOf(ctx context.Context, userID int) ([]int, error)
	SaversOf(ctx context.Context, recipeID int) ([]int, error)
}

type savedRecipeRepository struct {
	db *gorm.DB
}

// NewSavedRecipeRepository creates a new saved-recipe repository.
func NewSavedRecipeRepository(db *gorm.DB) SavedRecipeRepository {
	return &savedRecipeRepository{db: db}
}

// Save is idempotent: saving an already saved recipe changes nothing.
func (r *savedRecipeRepository) Save(ctx context.Context, userID, recipeID int) error {
	saved := &model.SavedRecipe{UserID: userID, RecipeID: recipeID}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(saved).Error
	return translate(err, apperrors.ErrRecipeNotFound)
}

func (r *savedRecipeRepository) Unsave(ctx context.Context, userID, recipeID int) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.SavedRecipe{})
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrRecipeNotFound)
	}
	return res.RowsAffected, nil
}

func (r *savedRecipeRepository) IsSaved(ctx context.Context, userID, recipeID int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, translate(err, apperrors.ErrRecipeNotFound)
	}
	return count > 0, nil
}

// RecipesOf lists recipe ids saved by a user, oldest save first.
func (r *savedRecipeRepository) RecipesOf(ctx context.Context, userID int) ([]int, error) {
	ids := make([]int, 0)
	if err := r.db.WithContext(ctx).Model(&model.SavedRecipe{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrRecipeNotFound)
	}
	return ids, nil
}

// SaversOf lists ids of users who saved a recipe.
func (r *savedRecipeRepository) SaversOf(ctx context.Context, recipeID int) ([]int, error) {
	ids := make([]int, 0)
	if err := r.db.WithContext(ctx).Model(&model.SavedRecipe{}).
		Where("recipe_id = ?", recipeID).
		Order("created_at").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrRecipeNotFound)
	}
	return ids, nil
}
