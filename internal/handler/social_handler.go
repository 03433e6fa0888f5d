package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipehub/internal/service"
)

// SocialHandler handles follow and save endpoints.
type SocialHandler struct {
	socialService service.SocialService
	savedService  service.SavedService
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(socialService service.SocialService, savedService service.SavedService) *SocialHandler {
	return &SocialHandler{socialService: socialService, savedService: savedService}
}

// FollowRequest names both ends of a follow edge.
type FollowRequest struct {
	FollowerUsername string `json:"follower_username" validate:"required"`
	FollowedUsername string `json:"followed_username" validate:"required"`
}

// FollowStatusResponse reports whether an edge exists.
type FollowStatusResponse struct {
	Following bool `json:"following"`
}

// SaveRequest names a user and a recipe.
type SaveRequest struct {
	Username string `json:"username" validate:"required"`
	RecipeID int    `json:"recipe_id" validate:"required,gt=0"`
}

// Follow godoc
// @Summary Follow a user
// @Tags follows
// @Accept json
// @Produce json
// @Param request body FollowRequest true "Follower and followed"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /follows [post]
func (h *SocialHandler) Follow(c echo.Context) error {
	var req FollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.socialService.Follow(c.Request().Context(), req.FollowerUsername, req.FollowedUsername); err != nil {
		return fail(err)
	}
	return message(c, http.StatusOK, "now following "+req.FollowedUsername)
}

// Unfollow godoc
// @Summary Stop following a user
// @Tags follows
// @Accept json
// @Produce json
// @Param request body FollowRequest true "Follower and followed"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /follows [delete]
func (h *SocialHandler) Unfollow(c echo.Context) error {
	var req FollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.socialService.Unfollow(c.Request().Context(), req.FollowerUsername, req.FollowedUsername); err != nil {
		return fail(err)
	}
	return message(c, http.StatusOK, "unfollowed "+req.FollowedUsername)
}

// CheckFollow godoc
// @Summary Check whether one user follows another
// @Tags follows
// @Accept json
// @Produce json
// @Param request body FollowRequest true "Follower and followed"
// @Success 200 {object} FollowStatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /follows/check [post]
func (h *SocialHandler) CheckFollow(c echo.Context) error {
	var req FollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	following, err := h.socialService.IsFollowing(c.Request().Context(), req.FollowerUsername, req.FollowedUsername)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, FollowStatusResponse{Following: following})
}

// SaveRecipe godoc
// @Summary Save a recipe
// @Tags saved-recipes
// @Accept json
// @Produce json
// @Param request body SaveRequest true "User and recipe"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /saved-recipes [post]
func (h *SocialHandler) SaveRecipe(c echo.Context) error {
	var req SaveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.savedService.Save(c.Request().Context(), req.Username, req.RecipeID); err != nil {
		return fail(err)
	}
	return message(c, http.StatusOK, "recipe saved")
}

// UnsaveRecipe godoc
// @Summary Remove a saved recipe
// @Tags saved-recipes
// @Accept json
// @Produce json
// @Param request body SaveRequest true "User and recipe"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /saved-recipes [delete]
func (h *SocialHandler) UnsaveRecipe(c echo.Context) error {
	var req SaveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.savedService.Unsave(c.Request().Context(), req.Username, req.RecipeID); err != nil {
		return fail(err)
	}
	return message(c, http.StatusOK, "recipe removed from saved")
}
