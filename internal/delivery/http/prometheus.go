package http

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Diagnostic endpoints for exercising dashboards and alerts. They burn CPU
// and memory on demand, so only the admin account may call them.
func (h *HttpAPIHandler) SetupPrometheus(base *echo.Group) {
	p := base.Group("/prometheus", h.adminAuth())
	p.GET("/get_error", h.getError)
	p.GET("/time_consumer", h.timeConsumer)
	p.GET("/memory_consumer", h.memoryConsumer)
}

func (h *HttpAPIHandler) getError(c echo.Context) error {
	if rand.Float64() > 0.5 {
		return errors.New("division by zero")
	}
	return errors.New("key not found")
}

func (h *HttpAPIHandler) timeConsumer(c echo.Context) error {
	delay := time.Duration(rand.Float64() * float64(5*time.Second))
	select {
	case <-time.After(delay):
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}
	return c.JSON(http.StatusOK, 1)
}

func (h *HttpAPIHandler) memoryConsumer(c echo.Context) error {
	items := make([]int, 30_000_000)
	for i := range items {
		items[i] = i
	}
	_ = items[len(items)-1]
	return c.JSON(http.StatusOK, 1)
}
