package middleware

import (
	"net/http"
	"time"

	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/logger"

	"github.com/labstack/echo/v4"
)

const cacheHeader = "X-Cache"

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body = append(r.body, b...)
	return r.ResponseWriter.Write(b)
}

// CacheResponse memoises successful GET responses of a route for ttl. The
// key is the full request URI. Until the provider is initialised requests
// pass straight through.
func CacheResponse(provider *cache.Provider, ttl time.Duration, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			store, ok := provider.Cache()
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			key := "response:" + c.Request().URL.RequestURI()

			hit, found, err := cache.GetJSON[cachedResponse](ctx, store, key)
			if err != nil {
				log.WarnContext(ctx, "Failed to read response cache", logger.ErrorField(err), logger.StringField("key", key))
			}
			if found {
				c.Response().Header().Set(cacheHeader, "HIT")
				return c.Blob(hit.Status, hit.ContentType, hit.Body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec
			c.Response().Header().Set(cacheHeader, "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK {
				return nil
			}

			entry := cachedResponse{
				Status:      rec.status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.body,
			}
			if err := cache.SetJSON(ctx, store, key, entry, ttl); err != nil {
				log.WarnContext(ctx, "Failed to write response cache", logger.ErrorField(err), logger.StringField("key", key))
			}
			return nil
		}
	}
}
