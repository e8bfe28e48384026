package http

import (
	"crypto/subtle"
	"errors"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/repository"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupAdmin mounts the back-office views behind basic auth.
// adminAuth checks HTTP basic credentials against the admin account.
func (h *HttpAPIHandler) adminAuth() echo.MiddlewareFunc {
	return middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.Admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.Admin.Password)) == 1
		return userOK && passOK, nil
	})
}

func (h *HttpAPIHandler) SetupAdmin(base *echo.Group) {
	base.Use(h.adminAuth())
	base.GET("", h.adminViews)
	base.GET("/:view", h.adminList)
	base.GET("/:view/:id", h.adminGet)
	base.DELETE("/:view/:id", h.adminDelete)
}

func adminError(err error) error {
	switch {
	case errors.Is(err, repository.ErrAdminViewNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrAdminDeleteForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return err
}

func (h *HttpAPIHandler) adminViews(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse(h.cfg.App.Title, h.service.AdminRepo.Views()))
}

func (h *HttpAPIHandler) adminList(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	result, err := h.service.AdminRepo.List(c.Request().Context(), c.Param("view"), page, pageSize)
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) adminGet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	item, err := h.service.AdminRepo.Get(c.Request().Context(), c.Param("view"), uint(id))
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *HttpAPIHandler) adminDelete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.service.AdminRepo.Delete(c.Request().Context(), c.Param("view"), uint(id)); err != nil {
		return adminError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
