package middleware

import (
	"math"
	"time"

	"hotel-booking/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewTimingMiddleware logs how long each request took, in seconds rounded to
// four decimals. Requests that panic are logged too.
func NewTimingMiddleware(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			defer func() {
				elapsed := time.Since(start).Seconds()
				log.InfoContext(c.Request().Context(), "Request handling time",
					logger.Float64Field("process_time", math.Round(elapsed*10000)/10000),
					logger.StringField("method", c.Request().Method),
					logger.StringField("path", c.Request().URL.Path),
				)
			}()
			return next(c)
		}
	}
}
