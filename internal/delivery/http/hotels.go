package http

import (
	"hotel-booking/internal/dto"
	"hotel-booking/pkg/middleware"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupHotels(base *echo.Group) {
	hotels := base.Group("/hotels")
	hotels.GET("/:location", h.searchHotels, middleware.CacheResponse(h.cache, hotelsCacheTTL, h.log))
	hotels.GET("/id/:hotel_id", h.getHotel)
}

func (h *HttpAPIHandler) SetupRooms(base *echo.Group) {
	base.GET("/hotels/:hotel_id/rooms", h.listRooms)
}

func (h *HttpAPIHandler) searchHotels(c echo.Context) error {
	req := new(dto.SearchHotelsRequest)
	if err := h.bind(c, req); err != nil {
		return err
	}
	hotels, err := h.service.HotelService.Search(c.Request().Context(), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotels)
}

func (h *HttpAPIHandler) getHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("hotel_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hotel id")
	}
	hotel, err := h.service.HotelService.Get(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotel)
}

func (h *HttpAPIHandler) listRooms(c echo.Context) error {
	req := new(dto.SearchRoomsRequest)
	if err := h.bind(c, req); err != nil {
		return err
	}
	rooms, err := h.service.HotelService.ListRooms(c.Request().Context(), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}
