package cmd

import (
	"context"
	"fmt"
	"hotel-booking/internal/app"
	"hotel-booking/internal/service"
	"hotel-booking/pkg/logger"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the HTTP API",
	RunE:  StartAPI,
}

// StartAPI returns an error when the application cannot be built or served,
// so the process exits non-zero.
func StartAPI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		return fmt.Errorf("failed to create app dependency: %w", err)
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			log.Printf("Failed to close app dependency: %v", err)
		}
	}()

	services := service.NewService(appDep.cfg, appDep.log, appDep.repo, appDep.broker)
	application, err := app.New(ctx, appDep.cfg, appDep.log, services, appDep.cache)
	if err != nil {
		appDep.log.Error("Failed to build application", logger.ErrorField(err))
		return fmt.Errorf("failed to build application: %w", err)
	}
	return serveApp(ctx, appDep.log, application)
}

type server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// serveApp runs srv until ctx is cancelled or Start fails.
func serveApp(ctx context.Context, log *logger.Logger, srv server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("HTTP server stopped with error", logger.ErrorField(err))
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
