package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipehub/internal/model"
	"recipehub/internal/service"
)

// UserHandler handles account and per-user listing endpoints.
type UserHandler struct {
	authService         service.AuthService
	userService         service.UserService
	recipeService       service.RecipeService
	socialService       service.SocialService
	savedService        service.SavedService
	mealPlanService     service.MealPlanService
	notificationService service.NotificationService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(
	authService service.AuthService,
	userService service.UserService,
	recipeService service.RecipeService,
	socialService service.SocialService,
	savedService service.SavedService,
	mealPlanService service.MealPlanService,
	notificationService service.NotificationService,
) *UserHandler {
	return &UserHandler{
		authService:         authService,
		userService:         userService,
		recipeService:       recipeService,
		socialService:       socialService,
		savedService:        savedService,
		mealPlanService:     mealPlanService,
		notificationService: notificationService,
	}
}

// CredentialsRequest carries a username and password.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SearchRequest carries a substring to search for.
type SearchRequest struct {
	Search string `json:"search" validate:"required"`
}

// CreateUserResponse is returned after registration.
type CreateUserResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

// CountResponse carries a count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// CreateUser godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Username and password"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CredentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, CreateUserResponse{Message: "user created", ID: user.ID})
}

// DeleteUser godoc
// @Summary Delete a user and everything they own
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Username and password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var req CredentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), req.Username, req.Password); err != nil {
		return fail(err)
	}
	return message(c, http.StatusOK, "user deleted")
}

// GetUser godoc
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers godoc
// @Summary Search usernames by substring
// @Tags users
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Substring"
// @Success 200 {object} IDsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/search [post]
func (h *UserHandler) SearchUsers(c echo.Context) error {
	var req SearchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ids, err := h.userService.SearchUsers(c.Request().Context(), req.Search)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, IDsResponse{IDs: ids})
}

// listIDs runs a per-user id listing.
func (h *UserHandler) listIDs(c echo.Context, list func(c echo.Context, userID int) ([]int, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ids, err := list(c, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, IDsResponse{IDs: ids})
}

// ListRecipes godoc
// @Summary List a user's recipes in creation order
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} IDsResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/recipes [get]
func (h *UserHandler) ListRecipes(c echo.Context) error {
	return h.listIDs(c, func(c echo.Context, userID int) ([]int, error) {
		return h.recipeService.ListByAuthor(c.Request().Context(), userID)
	})
}

// ListSavedRecipes godoc
// @Summary List recipes a user saved
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} IDsResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/saved-recipes [get]
func (h *UserHandler) ListSavedRecipes(c echo.Context) error {
	return h.listIDs(c, func(c echo.Context, userID int) ([]int, error) {
		return h.savedService.ListSaved(c.Request().Context(), userID)
	})
}

// Followers godoc
// @Summary List a user's followers
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} IDsResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/followers [get]
func (h *UserHandler) Followers(c echo.Context) error {
	return h.listIDs(c, func(c echo.Context, userID int) ([]int, error) {
		return h.socialService.Followers(c.Request().Context(), userID)
	})
}

// Following godoc
// @Summary List users a user follows
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} IDsResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/following [get]
func (h *UserHandler) Following(c echo.Context) error {
	return h.listIDs(c, func(c echo.Context, userID int) ([]int, error) {
		return h.socialService.Following(c.Request().Context(), userID)
	})
}

// CountFollowers godoc
// @Summary Count a user's followers
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} CountResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/followers/count [get]
func (h *UserHandler) CountFollowers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	count, err := h.socialService.CountFollowers(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

// Notifications godoc
// @Summary List a user's unread notifications
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.Notification
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/notifications [get]
func (h *UserHandler) Notifications(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	notifications, err := h.notificationService.List(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MealPlan godoc
// @Summary Get a user's weekly meal plan
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.MealPlanEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/meal-plan [get]
func (h *UserHandler) MealPlan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var entries []model.MealPlanEntry
	if entries, err = h.mealPlanService.List(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, entries)
}
