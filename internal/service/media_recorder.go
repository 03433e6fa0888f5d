package service

import "context"

// MediaRecorder stores uploaded image paths on users and recipes.
type MediaRecorder struct {
	users   UserService
	recipes RecipeService
}

// NewMediaRecorder creates a recorder over the user and recipe services.
func NewMediaRecorder(users UserService, recipes RecipeService) *MediaRecorder {
	return &MediaRecorder{users: users, recipes: recipes}
}

func (r *MediaRecorder) SetRecipeImage(ctx context.Context, recipeID int, path string) error {
	return r.recipes.SetImage(ctx, recipeID, path)
}

func (r *MediaRecorder) SetProfilePic(ctx context.Context, username, path string) error {
	return r.users.SetProfilePic(ctx, username, path)
}

func (r *MediaRecorder) SetBanner(ctx context.Context, username, path string) error {
	return r.users.SetBanner(ctx, username, path)
}
