// Package fanout turns recipe and follow events into one notification per
// interested user.
package fanout

import (
	"context"
	"fmt"
	"log/slog"

	"recipehub/internal/model"
	"recipehub/internal/repository"
)

// Store is the slice of the storage engine the fanout needs.
type Store interface {
	FollowersOf(ctx context.Context, userID int) ([]int, error)
	SaversOf(ctx context.Context, recipeID int) ([]int, error)
	OwnerOf(ctx context.Context, recipeID int) (int, error)
	UsernameOf(ctx context.Context, userID int) (string, error)
	CreateNotification(ctx context.Context, n *model.Notification) error
}

// Publisher pushes committed notifications to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, n model.Notification) error
}

// Engine creates notifications for recipe and follow events.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a fanout engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("component", "fanout")}
}

// OnRecipeCreated notifies every follower of the author.
func (e *Engine) OnRecipeCreated(ctx context.Context, st Store, authorID int, title string) ([]model.Notification, error) {
	author, err := st.UsernameOf(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("lookup author: %w", err)
	}
	followers, err := st.FollowersOf(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return e.deliver(ctx, st, followers, authorID, RecipeCreatedMessage(author, title))
}

// OnRecipeEdited notifies every saver of the recipe. The notification is
// attributed to whoever owns the recipe at the time of the edit.
func (e *Engine) OnRecipeEdited(ctx context.Context, st Store, recipeID int, title string) ([]model.Notification, error) {
	savers, err := st.SaversOf(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list savers: %w", err)
	}
	if len(savers) == 0 {
		return nil, nil
	}
	ownerID, err := st.OwnerOf(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("lookup owner: %w", err)
	}
	owner, err := st.UsernameOf(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("lookup owner name: %w", err)
	}
	return e.deliver(ctx, st, savers, ownerID, RecipeEditedMessage(owner, title))
}

// OnFollowed notifies the followed user.
func (e *Engine) OnFollowed(ctx context.Context, st Store, followerID, followedID int) ([]model.Notification, error) {
	follower, err := st.UsernameOf(ctx, followerID)
	if err != nil {
		return nil, fmt.Errorf("lookup follower: %w", err)
	}
	return e.deliver(ctx, st, []int{followedID}, followerID, FollowedMessage(follower))
}

// deliver inserts one notification per recipient and stops at the first
// failure so the caller can roll the whole event back.
func (e *Engine) deliver(ctx context.Context, st Store, recipients []int, originID int, message string) ([]model.Notification, error) {
	created := make([]model.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		n := model.Notification{UserID: recipient, OriginUserID: originID, Message: message}
		if err := st.CreateNotification(ctx, &n); err != nil {
			return nil, fmt.Errorf("notify user %d: %w", recipient, err)
		}
		created = append(created, n)
	}
	e.logger.DebugContext(ctx, "fanout delivered", "origin_user_id", originID, "recipients", len(created))
	return created, nil
}

// Publish hands committed notifications to p. Failures are logged and dropped.
func (e *Engine) Publish(ctx context.Context, p Publisher, notifications []model.Notification) {
	if p == nil {
		return
	}
	for _, n := range notifications {
		if err := p.Publish(ctx, n); err != nil {
			e.logger.WarnContext(ctx, "publish notification", "notification_id", n.ID, "user_id", n.UserID, "error", err)
		}
	}
}

func RecipeCreatedMessage(author, title string) string {
	return fmt.Sprintf("%s added a new recipe: %s", author, title)
}

func RecipeEditedMessage(owner, title string) string {
	return fmt.Sprintf("%s edited a recipe you saved: %s", owner, title)
}

func FollowedMessage(follower string) string {
	return fmt.Sprintf("%s started following you", follower)
}

// repoStore adapts a repository.Store, possibly bound to a transaction.
type repoStore struct {
	st repository.Store
}

// FromRepositories exposes st as a fanout Store.
func FromRepositories(st repository.Store) Store {
	return repoStore{st: st}
}

func (r repoStore) FollowersOf(ctx context.Context, userID int) ([]int, error) {
	return r.st.Follows().FollowersOf(ctx, userID)
}

func (r repoStore) SaversOf(ctx context.Context, recipeID int) ([]int, error) {
	return r.st.SavedRecipes().SaversOf(ctx, recipeID)
}

func (r repoStore) OwnerOf(ctx context.Context, recipeID int) (int, error) {
	return r.st.Recipes().OwnerOf(ctx, recipeID)
}

func (r repoStore) UsernameOf(ctx context.Context, userID int) (string, error) {
	user, err := r.st.Users().FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

func (r repoStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.st.Notifications().Create(ctx, n)
}
