package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups every repository over one database handle. A Store obtained
// inside WithTransaction runs all of its repositories on the same transaction.
type Store interface {
	Users() UserRepository
	Recipes() RecipeRepository
	SavedRecipes() SavedRecipeRepository
	Follows() FollowRepository
	MealPlans() MealPlanRepository
	Notifications() NotificationRepository
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db            *gorm.DB
	users         UserRepository
	recipes       RecipeRepository
	savedRecipes  SavedRecipeRepository
	follows       FollowRepository
	mealPlans     MealPlanRepository
	notifications NotificationRepository
}

// NewStore builds a Store on db. db is safe for concurrent use; pass the
// same handle to every consumer.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:            db,
		users:         NewUserRepository(db),
		recipes:       NewRecipeRepository(db),
		savedRecipes:  NewSavedRecipeRepository(db),
		follows:       NewFollowRepository(db),
		mealPlans:     NewMealPlanRepository(db),
		notifications: NewNotificationRepository(db),
	}
}

func (s *store) Users() UserRepository                 { return s.users }
func (s *store) Recipes() RecipeRepository             { return s.recipes }
func (s *store) SavedRecipes() SavedRecipeRepository   { return s.savedRecipes }
func (s *store) Follows() FollowRepository             { return s.follows }
func (s *store) MealPlans() MealPlanRepository         { return s.mealPlans }
func (s *store) Notifications() NotificationRepository { return s.notifications }

// WithTransaction executes fn within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	})
}
