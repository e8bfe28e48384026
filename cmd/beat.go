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
)

var beatCmd = &cobra.Command{
	Use:   "beat",
	Short: "Enqueue periodic tasks on their schedule",
	RunE:  StartBeat,
}

func StartBeat(cmd *cobra.Command, args []string) error {
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

	beat := service.NewBeat(appDep.cfg, appDep.log, appDep.broker, appDep.loc)
	if err := beat.Run(ctx); err != nil {
		appDep.log.Error("Beat stopped with error", logger.ErrorField(err))
		return fmt.Errorf("beat: %w", err)
	}
	return nil
}
