package middleware

import (
	"net/http"

	"hotel-booking/config"
	"hotel-booking/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewRateLimiterMiddleware limits requests per client IP. It guards the auth
// routes against password guessing.
func NewRateLimiterMiddleware(cfg config.Auth) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RatePerSecond),
				Burst:     cfg.RateBurst,
				ExpiresIn: cfg.RateExpiration,
			},
		),

		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},

		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Access forbidden: Rate limiter error occurred",
			))
		},

		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				http.StatusTooManyRequests,
				"Too many requests: Rate limit exceeded. Please try again later",
			))
		},
	}

	return middleware.RateLimiterWithConfig(config)
}
