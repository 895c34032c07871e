package http

import (
	"errors"
	"log/slog"
	"net/http"

	"waterdelivery/internal/generated/servers"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

// statusFor maps the error taxonomy to HTTP status codes. Transaction
// conflicts that survived all retries are reported as 503 so the caller may
// retry the request as-is.
func statusFor(err error) int {
	switch {
	case errs.IsRetryable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConsistencyDrift):
		return http.StatusConflict
	case errors.Is(err, errs.ErrQuantityIsInvalid), errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every handler error as a servers.Error body.
// Internal errors are logged and answered without details.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = http.StatusText(code)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}

		if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			message = http.StatusText(code)
		}
		if code == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", "1")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, servers.Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}
