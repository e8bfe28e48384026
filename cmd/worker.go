package cmd

import (
	"context"
	"fmt"
	"hotel-booking/internal/service"
	"hotel-booking/pkg/logger"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var embeddedBeat bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume and execute queued tasks",
	RunE:  StartWorker,
}

func init() {
	workerCmd.Flags().BoolVarP(&embeddedBeat, "beat", "B", false, "also run the beat scheduler in this process")
}

func StartWorker(cmd *cobra.Command, args []string) error {
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

	registry := service.NewTaskRegistry(appDep.cfg, appDep.log, appDep.repo, appDep.mailer, appDep.loc)
	appDep.log.Info("Registered tasks", logger.Field("tasks", registry.Names()))
	worker := service.NewWorker(appDep.cfg, appDep.log, appDep.broker, appDep.repo, registry)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	if embeddedBeat {
		beat := service.NewBeat(appDep.cfg, appDep.log, appDep.broker, appDep.loc)
		g.Go(func() error {
			return beat.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		appDep.log.Error("Worker stopped with error", logger.ErrorField(err))
		return fmt.Errorf("worker: %w", err)
	}
	return nil
}
