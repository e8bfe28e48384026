package http

import (
	"hotel-booking/internal/dto"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBookings(base *echo.Group) {
	bookings := base.Group("/bookings", h.requireUser)
	bookings.GET("", h.listBookings)
	bookings.POST("", h.addBooking)
	bookings.DELETE("/:booking_id", h.deleteBooking)
}

func (h *HttpAPIHandler) listBookings(c echo.Context) error {
	bookings, err := h.service.BookingService.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *HttpAPIHandler) addBooking(c echo.Context) error {
	req := new(dto.CreateBookingRequest)
	if err := h.bind(c, req); err != nil {
		return err
	}
	booking, err := h.service.BookingService.Add(c.Request().Context(), currentUser(c), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *HttpAPIHandler) deleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("booking_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	if err := h.service.BookingService.Delete(c.Request().Context(), currentUser(c), uint(id)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
