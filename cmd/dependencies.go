package cmd

import (
	"context"
	"errors"
	"fmt"
	"hotel-booking/config"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/mailer"
	"hotel-booking/pkg/postgres"
	"hotel-booking/pkg/utils"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type AppDependency struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *postgres.DB
	repo   *repository.Repository
	cache  *cache.Provider
	broker broker.Broker
	mailer mailer.Mailer
	loc    *time.Location
	sentry bool
}

// NewAppDependency loads config and opens the database and broker. The
// cache is only constructed here; it is initialised by the app.
func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sentryEnabled := !cfg.IsTest() && cfg.Sentry.DSN != ""
	if sentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Environment:      cfg.Mode,
			Release:          cfg.App.Version,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init sentry: %w", err)
		}
	}

	var logOpts []logger.Option
	if sentryEnabled {
		logOpts = append(logOpts, logger.WithAlert(logger.SentryAlert))
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, logOpts...)
	if err != nil {
		return nil, err
	}

	loc, err := utils.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(ctx, cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	b, err := broker.New(ctx, cfg)
	if err != nil {
		log.Error("Failed to connect to broker", zap.Error(err), zap.String("driver", cfg.Broker.Driver))
		_ = db.Close()
		return nil, err
	}

	return &AppDependency{
		cfg:    cfg,
		log:    log,
		db:     db,
		repo:   repository.NewRepository(db.DB),
		cache:  cache.NewProviderFromConfig(cfg, log),
		broker: b,
		mailer: mailer.New(cfg.Mail, log),
		loc:    loc,
		sentry: sentryEnabled,
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	var errs []error
	if d.broker != nil {
		errs = append(errs, d.broker.Close())
	}
	if d.db != nil {
		errs = append(errs, d.db.Close())
	}
	if d.sentry {
		sentry.Flush(2 * time.Second)
	}
	_ = d.log.Sync()
	return errors.Join(errs...)
}
