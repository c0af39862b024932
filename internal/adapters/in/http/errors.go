package http

import (
	"errors"
	"log/slog"
	"net/http"

	"aidmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition), errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
