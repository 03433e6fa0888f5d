package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipehub/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotification godoc
// @Summary Get a notification
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} model.Notification
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.notificationService.Get(c.Request().Context(), uint(id))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, n)
}

// MarkRead godoc
// @Summary Mark a notification read, deleting it
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationService.MarkRead(c.Request().Context(), uint(id)); err != nil {
		return fail(err)
	}
	return message(c, http.StatusOK, "notification read")
}
