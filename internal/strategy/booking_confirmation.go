package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel-booking/internal/dto"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/common"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/mailer"
	"time"
)

// BookingConfirmationArgs is the payload enqueued after a booking is created.
type BookingConfirmationArgs struct {
	BookingID uint      `json:"booking_id"`
	Email     string    `json:"email"`
	RoomID    uint      `json:"room_id"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
	TotalCost int       `json:"total_cost"`
}

type BookingConfirmationStrategy struct {
	log    *logger.Logger
	mailer mailer.Mailer
}

func NewBookingConfirmationStrategy(log *logger.Logger, m mailer.Mailer) *BookingConfirmationStrategy {
	return &BookingConfirmationStrategy{log: log, mailer: m}
}

func (s *BookingConfirmationStrategy) Name() string {
	return common.TASK_BOOKING_CONFIRMATION
}

func (s *BookingConfirmationStrategy) Execute(ctx context.Context, msg broker.Message) (TaskResult, error) {
	var args BookingConfirmationArgs
	if err := json.Unmarshal(msg.Args, &args); err != nil {
		s.log.ErrorContext(ctx, "Failed to unmarshal task args", logger.ErrorField(err), logger.StringField("task_id", msg.ID))
		return TaskResult{ExitCode: TASK_EXIT_CODE_FAILED, Output: err.Error()}, fmt.Errorf("failed to unmarshal task args: %w", err)
	}

	err := s.mailer.Send(ctx, mailer.Email{
		To:      args.Email,
		Subject: "Подтверждение бронирования",
		Body: fmt.Sprintf("Вы забронировали номер %d с %s по %s. Стоимость: %d.",
			args.RoomID,
			args.DateFrom.Format(dto.DateLayout),
			args.DateTo.Format(dto.DateLayout),
			args.TotalCost,
		),
	})
	if err != nil {
		return TaskResult{ExitCode: TASK_EXIT_CODE_FAILED, Output: err.Error()}, err
	}
	return TaskResult{ExitCode: TASK_EXIT_CODE_SUCCESS, Output: fmt.Sprintf("confirmation sent for booking %d", args.BookingID)}, nil
}
