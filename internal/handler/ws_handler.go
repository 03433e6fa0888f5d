package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"recipehub/internal/realtime"
)

// WSHandler upgrades clients to the notification stream.
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler creates a new websocket handler.
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Notifications godoc
// @Summary Stream new notifications for a user over a websocket
// @Tags notifications
// @Param user_id query int true "User ID"
// @Success 101
// @Failure 400 {object} errors.ErrorResponse
// @Router /ws/notifications [get]
func (h *WSHandler) Notifications(c echo.Context) error {
	userID, err := strconv.Atoi(c.QueryParam("user_id"))
	if err != nil || userID <= 0 {
		return badRequest("user_id must be a positive integer")
	}
	return h.hub.Serve(c.Response(), c.Request(), userID)
}
