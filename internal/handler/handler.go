package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"recipehub/internal/errors"
)

// MessageResponse is returned by endpoints that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDsResponse carries a list of entity ids.
type IDsResponse struct {
	IDs []int `json:"ids"`
}

// fail converts a service error to an echo error. The original error is
// kept as the internal cause so the request logger records it.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func errorsResponse(msg, code string) errors.ErrorResponse {
	return errors.ErrorResponse{Error: msg, Code: code}
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errorsResponse(msg, "VALIDATION_ERROR"))
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, badRequest(name + " must be a positive integer")
	}
	return id, nil
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, MessageResponse{Message: msg})
}
