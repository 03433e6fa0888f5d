package service

import (
	"context"
	"fmt"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/fanout"
	"recipehub/internal/idalloc"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

// RecipeInput carries the editable fields of a recipe.
type RecipeInput struct {
	Title       string
	Ingredients string
	Steps       string
}

func (in RecipeInput) validate() error {
	return required("title", in.Title, "ingredients", in.Ingredients, "steps", in.Steps)
}

// RecipeService handles recipe publishing and editing.
type RecipeService interface {
	Create(ctx context.Context, username string, in RecipeInput) (*model.Recipe, error)
	Edit(ctx context.Context, id int, in RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, recipeID int, username string) (deleted bool, err error)
	Get(ctx context.Context, id int) (*model.Recipe, error)
	ListByAuthor(ctx context.Context, userID int) ([]int, error)
	Search(ctx context.Context, query string) ([]int, error)
	SetImage(ctx context.Context, recipeID int, path string) error
}

type recipeService struct {
	store     repository.Store
	ids       *idalloc.Allocator
	fanout    *fanout.Engine
	publisher fanout.Publisher
}

// NewRecipeService creates a new recipe service. publisher may be nil.
func NewRecipeService(store repository.Store, ids *idalloc.Allocator, engine *fanout.Engine, publisher fanout.Publisher) RecipeService {
	return &recipeService{
		store:     store,
		ids:       ids,
		fanout:    engine,
		publisher: publisher,
	}
}

// Create stores the recipe and notifies the author's followers in the same
// transaction.
func (s *recipeService) Create(ctx context.Context, username string, in RecipeInput) (*model.Recipe, error) {
	if err := required("username", username); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		recipe  *model.Recipe
		created []model.Notification
	)
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		author, err := tx.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		id, err := s.ids.Allocate(ctx, tx.Recipes().Exists)
		if err != nil {
			return fmt.Errorf("allocate recipe id: %w", err)
		}

		recipe = &model.Recipe{
			ID:          id,
			Title:       in.Title,
			Ingredients: in.Ingredients,
			Steps:       in.Steps,
			AuthorID:    author.ID,
		}
		if err := tx.Recipes().Create(ctx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}

		created, err = s.fanout.OnRecipeCreated(ctx, fanout.FromRepositories(tx), author.ID, in.Title)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.fanout.Publish(ctx, s.publisher, created)
	return recipe, nil
}

// Edit replaces the recipe fields and notifies everyone who saved it.
func (s *recipeService) Edit(ctx context.Context, id int, in RecipeInput) (*model.Recipe, error) {
	if err := positive("id", id); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		recipe  *model.Recipe
		created []model.Notification
	)
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Recipes().Update(ctx, id, in.Title, in.Ingredients, in.Steps); err != nil {
			return err
		}
		var err error
		created, err = s.fanout.OnRecipeEdited(ctx, fanout.FromRepositories(tx), id, in.Title)
		if err != nil {
			return err
		}
		recipe, err = tx.Recipes().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.fanout.Publish(ctx, s.publisher, created)
	return recipe, nil
}

// Delete removes the recipe when username owns it. Deleting someone else's
// recipe is a no-op reported through deleted.
func (s *recipeService) Delete(ctx context.Context, recipeID int, username string) (bool, error) {
	if err := required("username", username); err != nil {
		return false, err
	}
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	exists, err := s.store.Recipes().Exists(ctx, recipeID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperrors.ErrRecipeNotFound
	}

	affected, err := s.store.Recipes().Delete(ctx, recipeID, user.ID)
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	return affected > 0, nil
}

func (s *recipeService) Get(ctx context.Context, id int) (*model.Recipe, error) {
	return s.store.Recipes().FindByID(ctx, id)
}

// ListByAuthor returns the author's recipe ids in creation order.
func (s *recipeService) ListByAuthor(ctx context.Context, userID int) ([]int, error) {
	if err := ensureUser(ctx, s.store.Users(), userID); err != nil {
		return nil, err
	}
	return s.store.Recipes().FindByAuthor(ctx, userID)
}

func (s *recipeService) Search(ctx context.Context, query string) ([]int, error) {
	if err := required("search", query); err != nil {
		return nil, err
	}
	return s.store.Recipes().Search(ctx, query)
}

func (s *recipeService) SetImage(ctx context.Context, recipeID int, path string) error {
	return s.store.Recipes().UpdateImage(ctx, recipeID, path)
}

func ensureUser(ctx context.Context, users repository.UserRepository, id int) error {
	exists, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}
	return nil
}
