package service

import (
	"hotel-booking/config"
	"hotel-booking/internal/repository"
	"hotel-booking/internal/schedule"
	"hotel-booking/internal/strategy"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/common"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/mailer"
	"time"
)

type Service struct {
	AuthService    AuthService
	HotelService   HotelService
	BookingService BookingService
	ImportService  ImportService
	ImageService   ImageService
	AdminRepo      repository.AdminRepository
}

// NewService builds the services behind the HTTP API. publisher may be nil,
// in which case no confirmation emails are enqueued.
func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	publisher broker.Publisher,
) *Service {
	return &Service{
		AuthService:    NewAuthService(cfg.Auth, log, repo.UserRepo),
		HotelService:   NewHotelService(log, repo.HotelRepo, repo.RoomRepo),
		BookingService: NewBookingService(cfg, log, repo.BookingRepo, repo.RoomRepo, repo.UnitOfWork, publisher),
		ImportService:  NewImportService(log, repo.ImportRepo),
		ImageService:   NewImageService(log, cfg.Static.Dir),
		AdminRepo:      repo.AdminRepo,
	}
}

// NewTaskRegistry registers every task the worker knows how to run.
func NewTaskRegistry(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	m mailer.Mailer,
	loc *time.Location,
) strategy.Registry {
	return strategy.NewRegistry(
		strategy.NewBookingReminderStrategy(common.TASK_BOOKING_REMINDER_1DAY, 1, log, repo.BookingRepo, m, loc),
		strategy.NewBookingReminderStrategy(common.TASK_BOOKING_REMINDER_3DAYS, 3, log, repo.BookingRepo, m, loc),
		strategy.NewPeriodicStrategy(log, repo.TaskRunRepo, cfg.Worker.HistoryRetention),
		strategy.NewBookingConfirmationStrategy(log, m),
	)
}

// NewBeat builds the scheduler over the default schedule.
func NewBeat(cfg *config.Config, log *logger.Logger, publisher broker.Publisher, loc *time.Location) SchedulerService {
	return NewSchedulerService(log, schedule.Default(), publisher, cfg.Broker.Queue, cfg.Scheduler.PollInterval, loc)
}

func NewWorker(cfg *config.Config, log *logger.Logger, consumer broker.Consumer, repo *repository.Repository, registry strategy.Registry) WorkerService {
	executor := NewTaskExecutor(log, repo.TaskRunRepo, registry)
	return NewWorkerService(log, consumer, executor, cfg.Broker.Queue, cfg.Worker.Concurrency, cfg.Worker.TimeoutDuration)
}
