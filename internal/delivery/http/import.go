package http

import (
	"hotel-booking/internal/dto"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupImport(base *echo.Group) {
	imports := base.Group("/import", h.requireUser)
	imports.POST("/:table", h.importTable)
}

func (h *HttpAPIHandler) importTable(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	inserted, err := h.service.ImportService.Import(c.Request().Context(), c.Param("table"), src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("Imported", map[string]int64{"rows": inserted}))
}
