package http

import (
	"errors"
	"hotel-booking/internal/dto"
	"hotel-booking/pkg/logger"
	"net/http"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler renders every error as a BaseResponse. Domain errors
// carry their own status, validation errors become 422.
func NewHTTPErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var (
			httpErr       *echo.HTTPError
			validationErr goValidator.ValidationErrors
		)
		if appErr, ok := dto.AsAppError(err); ok {
			code, message = appErr.Code, appErr.Message
		} else if errors.As(err, &validationErr) {
			code, message = http.StatusUnprocessableEntity, validationErr.Error()
		} else if errors.As(err, &httpErr) {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "Request failed",
				logger.ErrorField(err),
				logger.StringField("path", c.Request().URL.Path),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, dto.NewErrorResponse(code, message))
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "Failed to write error response", logger.ErrorField(err))
		}
	}
}
