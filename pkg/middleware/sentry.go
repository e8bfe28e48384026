package middleware

import (
	"errors"
	"net/http"

	"hotel-booking/internal/dto"
	"hotel-booking/pkg/logger"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// NewSentryMiddleware attaches a per-request Sentry hub. Panics that reach it
// are reported and re-raised.
func NewSentryMiddleware() echo.MiddlewareFunc {
	return sentryecho.New(sentryecho.Options{Repanic: true})
}

// NewRecoverMiddleware turns handler panics into 500 errors and reports them,
// together with 5xx errors, to the request's Sentry hub. It must be the
// innermost middleware so metrics and timing see the final status. Without
// an initialised Sentry client the reports are dropped.
func NewRecoverMiddleware(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			hub := requestHub(c)

			defer func() {
				if r := recover(); r != nil {
					hub.RecoverWithContext(c.Request().Context(), r)
					log.ErrorContext(c.Request().Context(), "Panic recovered in handler",
						logger.Field("panic", r),
						logger.StringField("path", c.Request().URL.Path),
					)
					err = echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
				}
			}()

			err = next(c)
			if err != nil && isServerError(err) {
				hub.CaptureException(err)
			}
			return err
		}
	}
}

func requestHub(c echo.Context) *sentry.Hub {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		return hub
	}
	return sentry.CurrentHub().Clone()
}

func isServerError(err error) bool {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code >= http.StatusInternalServerError
	}
	if appErr, ok := dto.AsAppError(err); ok {
		return appErr.Code >= http.StatusInternalServerError
	}
	return true
}
