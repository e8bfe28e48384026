package http

import (
	"fmt"
	"hotel-booking/config"
	"hotel-booking/internal/service"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/middleware"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const hotelsCacheTTL = 30 * time.Second

type HttpAPIHandler struct {
	cfg       *config.Config
	log       *logger.Logger
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	cache     *cache.Provider
	metrics   *middleware.Metrics
}

func NewHttpAPIHandler(
	cfg *config.Config,
	log *logger.Logger,
	echo *echo.Echo,
	validator *goValidator.Validate,
	service *service.Service,
	cacheProvider *cache.Provider,
	metrics *middleware.Metrics,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		log:       log,
		echo:      echo,
		validator: validator,
		service:   service,
		cache:     cacheProvider,
		metrics:   metrics,
	}
}

// APIPrefix is the versioned mount point, /api/v{major}.
func APIPrefix(major int) string {
	return fmt.Sprintf("/api/v%d", major)
}

func (h *HttpAPIHandler) SetupRoutes() {
	api := h.echo.Group(APIPrefix(1))
	h.SetupAuth(api)
	h.SetupUsers(api)
	h.SetupHotels(api)
	h.SetupRooms(api)
	h.SetupBookings(api)
	h.SetupImages(api)
	h.SetupPrometheus(api)
	h.SetupImport(api)

	h.SetupPages(h.echo.Group("/pages"))
	h.SetupAdmin(h.echo.Group("/admin"))

	if h.metrics != nil {
		h.echo.GET("/metrics", h.metrics.Handler())
	}
	h.echo.Static("/static", h.cfg.Static.Dir)
}

// Routes lists "METHOD path" for every registered route.
func (h *HttpAPIHandler) Routes() []string {
	var out []string
	for _, r := range h.echo.Routes() {
		if r.Method == echo.RouteNotFound {
			continue
		}
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

func (h *HttpAPIHandler) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	return nil
}
