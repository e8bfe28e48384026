// Package app assembles the HTTP application: echo instance, middleware,
// feature routers, admin panel, metrics and the shared response cache.
package app

import (
	"context"
	"errors"
	"fmt"
	"hotel-booking/config"
	httpdelivery "hotel-booking/internal/delivery/http"
	"hotel-booking/internal/service"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/middleware"
	"net/http"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type App struct {
	cfg     *config.Config
	log     *logger.Logger
	echo    *echo.Echo
	cache   *cache.Provider
	handler *httpdelivery.HttpAPIHandler
}

// New wires the application. In TEST mode the cache is initialised here so
// tests that never call Start still get cached routes; otherwise it is left
// to Start. Both go through the same Provider.Init.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, services *service.Service, cacheProvider *cache.Provider) (*App, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpdelivery.NewHTTPErrorHandler(log)

	renderer, err := httpdelivery.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	e.Renderer = renderer

	metrics, err := middleware.NewMetrics(cfg.Metrics.ExcludedHandlers)
	if err != nil {
		return nil, err
	}

	e.Use(middleware.NewSentryMiddleware())
	e.Use(middleware.NewCORSMiddleware(cfg.CORS))
	e.Use(middleware.NewTimingMiddleware(log))
	e.Use(metrics.Middleware())
	e.Use(middleware.NewRecoverMiddleware(log))

	handler := httpdelivery.NewHttpAPIHandler(cfg, log, e, goValidator.New(), services, cacheProvider, metrics)
	handler.SetupRoutes()

	a := &App{
		cfg:     cfg,
		log:     log,
		echo:    e,
		cache:   cacheProvider,
		handler: handler,
	}

	if cfg.IsTest() {
		if err := a.initCache(ctx); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) initCache(ctx context.Context) error {
	if err := a.cache.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// OnStart runs before the server accepts traffic.
func (a *App) OnStart(ctx context.Context) error {
	return a.initCache(ctx)
}

// Start runs OnStart and then serves until the server is shut down.
func (a *App) Start(ctx context.Context) error {
	if err := a.OnStart(ctx); err != nil {
		return err
	}
	address := fmt.Sprintf(":%d", a.cfg.API.Port)
	a.log.Info("Starting HTTP server", logger.StringField("address", address))
	if err := a.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	timeout := a.cfg.API.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	a.log.Info("Shutting down HTTP server")
	if err := a.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return a.cache.Close()
}

func (a *App) Echo() *echo.Echo {
	return a.echo
}

func (a *App) Cache() *cache.Provider {
	return a.cache
}

func (a *App) Routes() []string {
	return a.handler.Routes()
}
