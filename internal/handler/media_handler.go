package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipehub/internal/media"
)

// MediaHandler handles image upload and download.
type MediaHandler struct {
	store *media.Store
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(store *media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// UploadRequest carries a base64 image. ID is required for recipe images,
// Username for profile and banner images.
type UploadRequest struct {
	Op       string `json:"op" validate:"required"`
	Image    string `json:"image" validate:"required"`
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// UploadResponse returns where the image was stored.
type UploadResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Upload godoc
// @Summary Upload an image for a recipe, profile picture or banner
// @Tags media
// @Accept json
// @Produce json
// @Param request body UploadRequest true "Image"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /media/upload [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	var req UploadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	path, err := h.store.Upload(c.Request().Context(), media.Upload{
		Op:       req.Op,
		Image:    req.Image,
		RecipeID: req.ID,
		Username: req.Username,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, UploadResponse{Message: "image stored", Path: path})
}

// Download godoc
// @Summary Download a stored image
// @Tags media
// @Produce octet-stream
// @Param path query string true "Path returned by upload"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /media [get]
func (h *MediaHandler) Download(c echo.Context) error {
	rc, contentType, err := h.store.Download(c.Request().Context(), c.QueryParam("path"))
	if err != nil {
		return fail(err)
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, contentType, rc)
}
