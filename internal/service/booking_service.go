package service

import (
	"context"
	"errors"
	"fmt"
	"hotel-booking/config"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/internal/repository"
	"hotel-booking/internal/strategy"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/common"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/utils"

	"gorm.io/gorm"
)

type BookingService interface {
	List(ctx context.Context, user *model.User) ([]model.Booking, error)
	Add(ctx context.Context, user *model.User, req dto.CreateBookingRequest) (*model.Booking, error)
	Delete(ctx context.Context, user *model.User, bookingID uint) error
}

type bookingService struct {
	cfg         *config.Config
	log         *logger.Logger
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	uow         repository.UnitOfWork
	publisher   broker.Publisher
}

// NewBookingService takes an optional publisher for confirmation emails.
func NewBookingService(
	cfg *config.Config,
	log *logger.Logger,
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	uow repository.UnitOfWork,
	publisher broker.Publisher,
) BookingService {
	return &bookingService{
		cfg:         cfg,
		log:         log,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

func (s *bookingService) List(ctx context.Context, user *model.User) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) Add(ctx context.Context, user *model.User, req dto.CreateBookingRequest) (*model.Booking, error) {
	from, to, err := req.Parse()
	if err != nil {
		return nil, err
	}

	var booking *model.Booking
	err = s.uow.Run(func(opts ...utils.DBOption) error {
		// Concurrent bookings of the same room queue up on this row lock, so
		// the count below sees every committed booking.
		lockOpts := append(append([]utils.DBOption{}, opts...), utils.ForUpdate())
		room, err := s.roomRepo.FindByID(ctx, req.RoomID, lockOpts...)
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}
		if room == nil {
			return dto.ErrRoomNotFound
		}

		left, err := s.roomRepo.RoomsLeft(ctx, req.RoomID, from, to, opts...)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to count rooms left: %w", err)
		}
		if left <= 0 {
			return dto.ErrRoomFullyBooked
		}

		booking = &model.Booking{
			RoomID:   room.ID,
			UserID:   user.ID,
			DateFrom: from,
			DateTo:   to,
			Price:    room.Price,
		}
		return s.bookingRepo.Create(ctx, booking, opts...)
	})
	if err != nil {
		if _, ok := dto.AsAppError(err); !ok {
			s.log.ErrorContext(ctx, "Failed to add booking", logger.ErrorField(err), logger.IntField("room_id", int(req.RoomID)))
		}
		return nil, err
	}

	booking.TotalDays = utils.DaysBetween(from, to)
	booking.TotalCost = booking.Price * booking.TotalDays
	s.enqueueConfirmation(ctx, user, booking)
	return booking, nil
}

func (s *bookingService) enqueueConfirmation(ctx context.Context, user *model.User, booking *model.Booking) {
	if s.publisher == nil {
		return
	}
	msg, err := broker.NewMessage(common.TASK_BOOKING_CONFIRMATION, strategy.BookingConfirmationArgs{
		BookingID: booking.ID,
		Email:     user.Email,
		RoomID:    booking.RoomID,
		DateFrom:  booking.DateFrom,
		DateTo:    booking.DateTo,
		TotalCost: booking.TotalCost,
	})
	if err == nil {
		err = s.publisher.Publish(ctx, s.cfg.Broker.Queue, msg)
	}
	if err != nil {
		s.log.WarnContext(ctx, "Failed to enqueue booking confirmation", logger.ErrorField(err), logger.IntField("booking_id", int(booking.ID)))
	}
}

func (s *bookingService) Delete(ctx context.Context, user *model.User, bookingID uint) error {
	affected, err := s.bookingRepo.DeleteForUser(ctx, user.ID, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if affected == 0 {
		return dto.ErrBookingNotFound
	}
	return nil
}
