package http

import (
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/middleware"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const currentUserKey = "current_user"

func (h *HttpAPIHandler) SetupAuth(base *echo.Group) {
	auth := base.Group("/auth", middleware.NewRateLimiterMiddleware(h.cfg.Auth))
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/logout", h.logout)
}

func (h *HttpAPIHandler) SetupUsers(base *echo.Group) {
	users := base.Group("/users", h.requireUser)
	users.GET("/me", h.me)
}

// requireUser resolves the access token cookie into the current user.
func (h *HttpAPIHandler) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var token string
		if cookie, err := c.Cookie(h.cfg.Auth.CookieName); err == nil {
			token = cookie.Value
		}
		user, err := h.service.AuthService.UserFromToken(c.Request().Context(), token)
		if err != nil {
			return err
		}
		c.Set(currentUserKey, user)
		return next(c)
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

func (h *HttpAPIHandler) register(c echo.Context) error {
	req := new(dto.UserAuthRequest)
	if err := h.bind(c, req); err != nil {
		return err
	}
	user, err := h.service.AuthService.Register(c.Request().Context(), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.UserResponse{ID: user.ID, Email: user.Email})
}

func (h *HttpAPIHandler) login(c echo.Context) error {
	req := new(dto.UserAuthRequest)
	if err := h.bind(c, req); err != nil {
		return err
	}
	token, err := h.service.AuthService.Login(c.Request().Context(), *req)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(h.cfg.Auth.TokenTTL),
	})
	return c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token})
}

func (h *HttpAPIHandler) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.NoContent(http.StatusOK)
}

func (h *HttpAPIHandler) me(c echo.Context) error {
	user := currentUser(c)
	return c.JSON(http.StatusOK, dto.UserResponse{ID: user.ID, Email: user.Email})
}
