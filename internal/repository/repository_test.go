package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipehub/internal/db/dbtest"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/model"
)

func newStore(t *testing.T) Store {
	t.Helper()
	return NewStore(dbtest.New(t))
}

func mustUser(t *testing.T, s Store, id int, username string) {
	t.Helper()
	require.NoError(t, s.Users().Create(context.Background(), &model.User{ID: id, Username: username, PasswordHash: "x"}))
}

func mustRecipe(t *testing.T, s Store, id, authorID int, title string) {
	t.Helper()
	require.NoError(t, s.Recipes().Create(context.Background(), &model.Recipe{
		ID: id, Title: title, Ingredients: "water", Steps: "boil", AuthorID: authorID,
	}))
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 7, "alice")

	exists, err := s.Users().Exists(ctx, 7)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Users().ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)

	user, err := s.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)

	_, err = s.Users().FindByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	s := newStore(t)
	mustUser(t, s, 1, "alice")

	err := s.Users().Create(context.Background(), &model.User{ID: 2, Username: "alice", PasswordHash: "x"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepository_Search(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 3, "user1")
	mustUser(t, s, 1, "user2")
	mustUser(t, s, 2, "admin")
	mustUser(t, s, 4, "100%_real")

	ids, err := s.Users().Search(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)

	ids, err = s.Users().Search(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)

	ids, err = s.Users().Search(ctx, "%_")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids, "wildcards are matched literally")

	again, err := s.Users().Search(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, again)
}

func TestUserRepository_UpdateMediaPaths(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")

	require.NoError(t, s.Users().UpdateProfilePic(ctx, 1, "images/i_0.jpg"))
	require.NoError(t, s.Users().UpdateBanner(ctx, 1, "images/i_1.png"))

	user, err := s.Users().FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user.ProfilePic)
	require.NotNil(t, user.Banner)
	assert.Equal(t, "images/i_0.jpg", *user.ProfilePic)
	assert.Equal(t, "images/i_1.png", *user.Banner)

	assert.ErrorIs(t, s.Users().UpdateBanner(ctx, 2, "x"), apperrors.ErrUserNotFound)
}

func TestRecipeRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustUser(t, s, 2, "bob")
	mustRecipe(t, s, 10, 1, "Soup")
	mustRecipe(t, s, 11, 1, "Bread")

	ids, err := s.Recipes().FindByAuthor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, ids)

	require.NoError(t, s.Recipes().Update(ctx, 10, "Tomato Soup", "tomato", "simmer"))
	recipe, err := s.Recipes().FindByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", recipe.Title)
	assert.Equal(t, "simmer", recipe.Steps)

	assert.ErrorIs(t, s.Recipes().Update(ctx, 99, "a", "b", "c"), apperrors.ErrRecipeNotFound)

	owner, err := s.Recipes().OwnerOf(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, owner)

	found, err := s.Recipes().Search(ctx, "Soup")
	require.NoError(t, err)
	assert.Equal(t, []int{10}, found)
}

func TestRecipeRepository_CreateUnknownAuthor(t *testing.T) {
	s := newStore(t)

	err := s.Recipes().Create(context.Background(), &model.Recipe{ID: 1, Title: "t", Ingredients: "i", Steps: "s", AuthorID: 42})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecipeRepository_DeleteRequiresOwner(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustUser(t, s, 2, "bob")
	mustRecipe(t, s, 10, 1, "Soup")

	affected, err := s.Recipes().Delete(ctx, 10, 2)
	require.NoError(t, err)
	assert.Zero(t, affected)

	exists, err := s.Recipes().Exists(ctx, 10)
	require.NoError(t, err)
	assert.True(t, exists)

	affected, err = s.Recipes().Delete(ctx, 10, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}

func TestSavedRecipeRepository_IdempotentSave(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustUser(t, s, 2, "bob")
	mustRecipe(t, s, 10, 1, "Soup")

	require.NoError(t, s.SavedRecipes().Save(ctx, 2, 10))
	require.NoError(t, s.SavedRecipes().Save(ctx, 2, 10))

	savers, err := s.SavedRecipes().SaversOf(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, savers)

	recipes, err := s.SavedRecipes().RecipesOf(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, recipes)

	removed, err := s.SavedRecipes().Unsave(ctx, 2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	saved, err := s.SavedRecipes().IsSaved(ctx, 2, 10)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestFollowRepository(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustUser(t, s, 2, "bob")
	mustUser(t, s, 3, "carol")

	created, err := s.Follows().Follow(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Follows().Follow(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, created, "re-follow is a no-op")

	_, err = s.Follows().Follow(ctx, 3, 1)
	require.NoError(t, err)

	count, err := s.Follows().CountFollowers(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	again, err := s.Follows().CountFollowers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, count, again)

	followers, err := s.Follows().FollowersOf(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 3}, followers)

	following, err := s.Follows().FollowingOf(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, following)

	ok, err := s.Follows().IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok, "follow is directed")

	removed, err := s.Follows().Unfollow(ctx, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func TestMealPlanRepository(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustRecipe(t, s, 10, 1, "Soup")
	mustRecipe(t, s, 11, 1, "Bread")

	require.NoError(t, s.MealPlans().Create(ctx, &model.MealPlanEntry{UserID: 1, RecipeID: 10, MealType: model.MealTypeDinner, DayOfWeek: "friday"}))
	require.NoError(t, s.MealPlans().Create(ctx, &model.MealPlanEntry{UserID: 1, RecipeID: 11, MealType: model.MealTypeLunch, DayOfWeek: "monday"}))

	entries, err := s.MealPlans().ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "monday", entries[0].DayOfWeek)
	assert.Equal(t, "friday", entries[1].DayOfWeek)

	removed, err := s.MealPlans().Remove(ctx, 1, 10, "friday")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	err = s.MealPlans().Create(ctx, &model.MealPlanEntry{UserID: 1, RecipeID: 99, MealType: model.MealTypeLunch, DayOfWeek: "monday"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustUser(t, s, 2, "bob")

	n := &model.Notification{UserID: 2, OriginUserID: 1, Message: "hello"}
	require.NoError(t, s.Notifications().Create(ctx, n))
	require.NotZero(t, n.ID)

	ids, err := s.Notifications().ListIDsByRecipient(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{n.ID}, ids)

	got, err := s.Notifications().FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, 1, got.OriginUserID)

	removed, err := s.Notifications().Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = s.Notifications().FindByID(ctx, n.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")
	mustUser(t, s, 2, "bob")
	mustRecipe(t, s, 10, 1, "Soup")
	mustRecipe(t, s, 20, 2, "Stew")
	require.NoError(t, s.SavedRecipes().Save(ctx, 2, 10))
	require.NoError(t, s.SavedRecipes().Save(ctx, 1, 20))
	_, err := s.Follows().Follow(ctx, 2, 1)
	require.NoError(t, err)
	require.NoError(t, s.MealPlans().Create(ctx, &model.MealPlanEntry{UserID: 2, RecipeID: 10, MealType: model.MealTypeLunch, DayOfWeek: "monday"}))
	require.NoError(t, s.Notifications().Create(ctx, &model.Notification{UserID: 2, OriginUserID: 1, Message: "m"}))

	require.NoError(t, s.Users().Delete(ctx, 1))

	exists, err := s.Recipes().Exists(ctx, 10)
	require.NoError(t, err)
	assert.False(t, exists, "recipe removed with author")

	savers, err := s.SavedRecipes().SaversOf(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, savers)

	saved, err := s.SavedRecipes().RecipesOf(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, saved)

	count, err := s.Follows().CountFollowers(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	plan, err := s.MealPlans().ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, plan)

	notifications, err := s.Notifications().ListIDsByRecipient(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	exists, err = s.Recipes().Exists(ctx, 20)
	require.NoError(t, err)
	assert.True(t, exists, "other users' recipes survive")
}

func TestStore_WithTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustUser(t, s, 1, "alice")

	err := s.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Recipes().Create(ctx, &model.Recipe{ID: 10, Title: "t", Ingredients: "i", Steps: "s", AuthorID: 1}); err != nil {
			return err
		}
		return tx.Notifications().Create(ctx, &model.Notification{UserID: 404, OriginUserID: 1, Message: "m"})
	})
	require.Error(t, err)

	exists, err := s.Recipes().Exists(ctx, 10)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%abc%", likePattern("abc"))
	assert.Equal(t, "%a!%b!_c!!%", likePattern("a%b_c!"))
}
