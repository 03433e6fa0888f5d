package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

// RecipeRepository defines recipe persistence operations.
type RecipeRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id int) (*model.Recipe, error)
	Update(ctx context.Context, id int, title, ingredients, steps string) error
	UpdateImage(ctx context.Context, id int, path string) error
	Delete(ctx context.Context, id, authorID int) (int64, error)
	FindByAuthor(ctx context.Context, authorID int) ([]int, error)
	OwnerOf(ctx context.Context, id int) (int, error)
	Search(ctx context.Context, query string) ([]int, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Exists reports whether a recipe with id is stored.
func (r *recipeRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, apperrors.ErrRecipeNotFound)
	}
	return count > 0, nil
}

// Create inserts a recipe. An unknown author surfaces as a not-found error.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
	return translate(err, apperrors.ErrUserNotFound)
}

// FindByID finds a recipe by ID.
func (r *recipeRepository) FindByID(ctx context.Context, id int) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, translate(err, apperrors.ErrRecipeNotFound)
	}
	return &recipe, nil
}

// Update replaces the editable fields of a recipe.
func (r *recipeRepository) Update(ctx context.Context, id int, title, ingredients, steps string) error {
	res := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":       title,
		"ingredients": ingredients,
		"steps":       steps,
	})
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRecipeNotFound)
	}
	return r.ensureAffected(ctx, id, res.RowsAffected)
}

// UpdateImage records the stored image path of a recipe.
func (r *recipeRepository) UpdateImage(ctx context.Context, id int, path string) error {
	res := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Update("image", path)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRecipeNotFound)
	}
	return r.ensureAffected(ctx, id, res.RowsAffected)
}

// MySQL reports zero affected rows when values did not change, so zero
// only means "missing" once the row is confirmed absent.
func (r *recipeRepository) ensureAffected(ctx context.Context, id int, affected int64) error {
	if affected > 0 {
		return nil
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrRecipeNotFound
	}
	return nil
}

// Delete removes the recipe only when authorID owns it and returns the number
// of rows removed. A mismatched owner is a no-op, not an error.
func (r *recipeRepository) Delete(ctx context.Context, id, authorID int) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).Delete(&model.Recipe{})
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrRecipeNotFound)
	}
	return res.RowsAffected, nil
}

// FindByAuthor lists recipe ids of an author in creation order.
func (r *recipeRepository) FindByAuthor(ctx context.Context, authorID int) ([]int, error) {
	ids := make([]int, 0)
	if err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("author_id = ?", authorID).
		Order("created_at, id").
		Pluck("id", &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrRecipeNotFound)
	}
	return ids, nil
}

// OwnerOf returns the current author of a recipe.
func (r *recipeRepository) OwnerOf(ctx context.Context, id int) (int, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Select("author_id").Where("id = ?", id).First(&recipe).Error; err != nil {
		return 0, translate(err, apperrors.ErrRecipeNotFound)
	}
	return recipe.AuthorID, nil
}

// Search returns ids of recipes whose title contains query.
func (r *recipeRepository) Search(ctx context.Context, query string) ([]int, error) {
	ids := make([]int, 0)
	if err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("title LIKE ? ESCAPE '!'", likePattern(query)).
		Order("created_at, id").
		Pluck("id", &ids).Error; err != nil {
		return nil, translate(err, apperrors.ErrRecipeNotFound)
	}
	return ids, nil
}
