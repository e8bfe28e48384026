package http

import (
	"embed"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer renders the embedded page templates.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type hotelsPage struct {
	Title    string
	Location string
	DateFrom string
	DateTo   string
	Hotels   []model.HotelWithRoomsLeft
}

func (h *HttpAPIHandler) SetupPages(base *echo.Group) {
	base.GET("/hotels", h.hotelsPage)
}

func (h *HttpAPIHandler) hotelsPage(c echo.Context) error {
	req := new(dto.SearchHotelsRequest)
	req.Location = c.QueryParam("location")
	if err := h.bind(c, req); err != nil {
		return err
	}
	hotels, err := h.service.HotelService.Search(c.Request().Context(), *req)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "hotels.html", hotelsPage{
		Title:    h.cfg.App.Title,
		Location: req.Location,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Hotels:   hotels,
	})
}
