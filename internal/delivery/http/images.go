package http

import (
	"hotel-booking/internal/dto"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupImages(base *echo.Group) {
	images := base.Group("/images")
	images.POST("/hotels", h.uploadHotelImage)
}

func (h *HttpAPIHandler) uploadHotelImage(c echo.Context) error {
	name, err := strconv.Atoi(c.FormValue("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "name must be an integer")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	path, err := h.service.ImageService.SaveHotelImage(c.Request().Context(), name, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("Image uploaded", map[string]string{"path": path}))
}
