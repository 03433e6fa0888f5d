package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipehub/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// CreateRecipeRequest represents a new recipe. Ingredients and steps are
// opaque serialized text.
type CreateRecipeRequest struct {
	Username    string `json:"username" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Ingredients string `json:"ingredients" validate:"required"`
	Steps       string `json:"steps" validate:"required"`
}

// UpdateRecipeRequest represents an edit of a recipe's fields.
type UpdateRecipeRequest struct {
	Title       string `json:"title" validate:"required"`
	Ingredients string `json:"ingredients" validate:"required"`
	Steps       string `json:"steps" validate:"required"`
}

// DeleteRecipeRequest names the user asking for the delete.
type DeleteRecipeRequest struct {
	Username string `json:"username" validate:"required"`
}

// CreateRecipe godoc
// @Summary Publish a recipe and notify the author's followers
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body CreateRecipeRequest true "Recipe"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	var req CreateRecipeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), req.Username, service.RecipeInput{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, recipe)
}

// GetRecipe godoc
// @Summary Get recipe by ID
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	recipe, err := h.recipeService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe godoc
// @Summary Edit a recipe and notify everyone who saved it
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "New fields"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateRecipeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	recipe, err := h.recipeService.Edit(c.Request().Context(), id, service.RecipeInput{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe owned by the given user
// @Description Deleting a recipe owned by someone else succeeds without removing anything.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body DeleteRecipeRequest true "Owner"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req DeleteRecipeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deleted, err := h.recipeService.Delete(c.Request().Context(), id, req.Username)
	if err != nil {
		return fail(err)
	}
	if !deleted {
		return message(c, http.StatusOK, "nothing deleted: recipe belongs to another user")
	}
	return message(c, http.StatusOK, "recipe deleted")
}

// SearchRecipes godoc
// @Summary Search recipe titles by substring
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Substring"
// @Success 200 {object} IDsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /recipes/search [post]
func (h *RecipeHandler) SearchRecipes(c echo.Context) error {
	var req SearchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ids, err := h.recipeService.Search(c.Request().Context(), req.Search)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, IDsResponse{IDs: ids})
}
