package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipehub/internal/service"
)

// MealPlanHandler handles meal plan endpoints.
type MealPlanHandler struct {
	mealPlanService service.MealPlanService
}

// NewMealPlanHandler creates a new meal plan handler.
func NewMealPlanHandler(mealPlanService service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

// AddMealRequest places a recipe on a day of the week.
type AddMealRequest struct {
	UserID    int    `json:"user_id" validate:"required,gt=0"`
	RecipeID  int    `json:"recipe_id" validate:"required,gt=0"`
	MealType  string `json:"meal_type" validate:"required"`
	DayOfWeek string `json:"day_of_week" validate:"required"`
}

// RemoveMealRequest identifies planned meals to remove.
type RemoveMealRequest struct {
	UserID    int    `json:"user_id" validate:"required,gt=0"`
	RecipeID  int    `json:"recipe_id" validate:"required,gt=0"`
	DayOfWeek string `json:"day_of_week" validate:"required"`
}

// AddMeal godoc
// @Summary Add a recipe to the meal plan
// @Tags meal-plan
// @Accept json
// @Produce json
// @Param request body AddMealRequest true "Entry"
// @Success 201 {object} model.MealPlanEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meal-plan [post]
func (h *MealPlanHandler) AddMeal(c echo.Context) error {
	var req AddMealRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entry, err := h.mealPlanService.Add(c.Request().Context(), req.UserID, req.RecipeID, req.MealType, req.DayOfWeek)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// RemoveMeal godoc
// @Summary Remove a recipe from a day of the meal plan
// @Tags meal-plan
// @Accept json
// @Produce json
// @Param request body RemoveMealRequest true "Entry"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meal-plan [delete]
func (h *MealPlanHandler) RemoveMeal(c echo.Context) error {
	var req RemoveMealRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	removed, err := h.mealPlanService.Remove(c.Request().Context(), req.UserID, req.RecipeID, req.DayOfWeek)
	if err != nil {
		return fail(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, errorsResponse("meal not planned", "NOT_FOUND"))
	}
	return message(c, http.StatusOK, "meal removed")
}
