package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/mailer"
	"hotel-booking/pkg/utils"
	"time"
)

// BookingReminderStrategy emails guests whose stay starts daysAhead days
// from today.
type BookingReminderStrategy struct {
	name        string
	daysAhead   int
	log         *logger.Logger
	bookingRepo repository.BookingRepository
	mailer      mailer.Mailer
	loc         *time.Location
	now         func() time.Time
}

func NewBookingReminderStrategy(
	name string,
	daysAhead int,
	log *logger.Logger,
	bookingRepo repository.BookingRepository,
	m mailer.Mailer,
	loc *time.Location,
) *BookingReminderStrategy {
	return &BookingReminderStrategy{
		name:        name,
		daysAhead:   daysAhead,
		log:         log,
		bookingRepo: bookingRepo,
		mailer:      m,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *BookingReminderStrategy) Name() string {
	return s.name
}

func (s *BookingReminderStrategy) Execute(ctx context.Context, msg broker.Message) (TaskResult, error) {
	target := utils.StartOfDay(s.now().In(s.loc)).AddDate(0, 0, s.daysAhead)
	s.log.InfoContext(ctx, "Sending booking reminders",
		logger.StringField("task", s.name),
		logger.StringField("date_from", target.Format(dto.DateLayout)),
	)

	reminders, err := s.bookingRepo.FindRemindersStartingOn(ctx, target)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to find bookings to remind", logger.ErrorField(err))
		return TaskResult{ExitCode: TASK_EXIT_CODE_FAILED, Output: err.Error()}, fmt.Errorf("failed to find bookings to remind: %w", err)
	}

	result := dto.ReminderResult{DaysAhead: s.daysAhead, Found: len(reminders)}
	for _, r := range reminders {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}
		if err := s.mailer.Send(ctx, s.compose(r)); err != nil {
			s.log.WarnContext(ctx, "Failed to send reminder",
				logger.ErrorField(err),
				logger.IntField("booking_id", int(r.BookingID)),
			)
			result.Failed = append(result.Failed, fmt.Sprintf("%d: %v", r.BookingID, err))
			continue
		}
		result.Sent++
	}

	out, err := json.Marshal(result)
	if err != nil {
		return TaskResult{ExitCode: TASK_EXIT_CODE_FAILED, Output: err.Error()}, fmt.Errorf("failed to marshal reminder result: %w", err)
	}

	code := int32(TASK_EXIT_CODE_SUCCESS)
	switch {
	case result.Found == 0:
		code = TASK_EXIT_CODE_SKIPPED
	case len(result.Failed) > 0 && result.Sent > 0:
		code = TASK_EXIT_CODE_PARTIAL_SUCCESS
	case len(result.Failed) > 0:
		return TaskResult{ExitCode: TASK_EXIT_CODE_FAILED, Output: string(out)}, fmt.Errorf("all %d reminders failed", len(result.Failed))
	}
	return TaskResult{ExitCode: code, Output: string(out)}, nil
}

func (s *BookingReminderStrategy) compose(r model.BookingReminder) mailer.Email {
	days := "день"
	if s.daysAhead > 1 {
		days = "дня"
	}
	return mailer.Email{
		To:      r.Email,
		Subject: fmt.Sprintf("Осталось %d %s до заселения", s.daysAhead, days),
		Body: fmt.Sprintf(
			"Напоминаем о бронировании в отеле %s (%s) с %s по %s.",
			r.HotelName,
			r.RoomName,
			r.DateFrom.Format(dto.DateLayout),
			r.DateTo.Format(dto.DateLayout),
		),
	}
}
