package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/logging"
)

// envelope is the uniform JSON wrapper used for every response, success
// or failure. StatusCode is only populated on failures.
type envelope struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode,omitempty"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
	Pagination any                 `json:"pagination,omitempty"`
	Detail     string              `json:"detail,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondPaged(c echo.Context, status int, message string, data, pagination any) error {
	return c.JSON(status, envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// ErrorHandler is the terminal stage of the pipeline: every error raised
// by a middleware or handler funnels here and is mapped kind -> status
// -> envelope. Unexpected errors become a generic Internal; their detail
// is only exposed outside production mode.
func ErrorHandler(env string, logg *logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := envelope{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
		}

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			resp.StatusCode = ae.Kind.Status()
			resp.Message = ae.Message
			resp.Errors = ae.Fields
			if ae.Err != nil && env != "prod" {
				resp.Detail = ae.Err.Error()
			}
		case errors.As(err, &he):
			// Router-level errors (unknown route, bad method).
			resp.StatusCode = he.Code
			resp.Message = fmt.Sprint(he.Message)
		default:
			if env != "prod" {
				resp.Detail = err.Error()
			}
		}

		if resp.StatusCode >= http.StatusInternalServerError && logg != nil {
			logg.Error(resp.Message, map[string]any{
				"path":  c.Request().URL.Path,
				"error": err.Error(),
			})
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.StatusCode)
			return
		}
		_ = c.JSON(resp.StatusCode, resp)
	}
}
