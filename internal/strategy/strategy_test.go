package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/common"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/mailer"
	"hotel-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	date      time.Time
	reminders []model.BookingReminder
	err       error
}

func (f *fakeBookingRepo) FindByUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking, opts ...utils.DBOption) error {
	return nil
}

func (f *fakeBookingRepo) DeleteForUser(ctx context.Context, userID, bookingID uint, opts ...utils.DBOption) (int64, error) {
	return 0, nil
}

func (f *fakeBookingRepo) FindRemindersStartingOn(ctx context.Context, date time.Time, opts ...utils.DBOption) ([]model.BookingReminder, error) {
	f.date = date
	return f.reminders, f.err
}

type fakeMailer struct {
	sent   []mailer.Email
	failTo map[string]bool
}

func (f *fakeMailer) Send(ctx context.Context, email mailer.Email) error {
	if f.failTo[email.To] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, email)
	return nil
}

func TestBookingReminderStrategy_Execute(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		daysAhead int
		reminders []model.BookingReminder
		failTo    map[string]bool
		repoErr   error
		wantCode  int32
		wantErr   bool
		wantSent  int
		wantDate  string
	}{
		{
			name:      "no bookings tomorrow",
			daysAhead: 1,
			wantCode:  TASK_EXIT_CODE_SKIPPED,
			wantDate:  "2026-10-19",
		},
		{
			name:      "all sent three days ahead",
			daysAhead: 3,
			reminders: []model.BookingReminder{
				{BookingID: 1, Email: "a@example.com", HotelName: "Skala"},
				{BookingID: 2, Email: "b@example.com", HotelName: "Skala"},
			},
			wantCode: TASK_EXIT_CODE_SUCCESS,
			wantSent: 2,
			wantDate: "2026-10-21",
		},
		{
			name:      "partial failure",
			daysAhead: 1,
			reminders: []model.BookingReminder{
				{BookingID: 1, Email: "a@example.com"},
				{BookingID: 2, Email: "b@example.com"},
			},
			failTo:   map[string]bool{"b@example.com": true},
			wantCode: TASK_EXIT_CODE_PARTIAL_SUCCESS,
			wantSent: 1,
			wantDate: "2026-10-19",
		},
		{
			name:      "every send failed",
			daysAhead: 1,
			reminders: []model.BookingReminder{{BookingID: 1, Email: "a@example.com"}},
			failTo:    map[string]bool{"a@example.com": true},
			wantCode:  TASK_EXIT_CODE_FAILED,
			wantErr:   true,
			wantDate:  "2026-10-19",
		},
		{
			name:      "repository error",
			daysAhead: 1,
			repoErr:   errors.New("connection reset"),
			wantCode:  TASK_EXIT_CODE_FAILED,
			wantErr:   true,
			wantDate:  "2026-10-19",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{reminders: tt.reminders, err: tt.repoErr}
			m := &fakeMailer{failTo: tt.failTo}
			s := NewBookingReminderStrategy("reminder", tt.daysAhead, logger.NewNop(), repo, m, time.UTC)
			s.now = func() time.Time { return now }

			res, err := s.Execute(context.Background(), broker.Message{ID: "1", Task: "reminder"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.Len(t, m.sent, tt.wantSent)
			assert.Equal(t, tt.wantDate, repo.date.Format(dto.DateLayout))
		})
	}
}

func TestBookingReminderStrategy_OutputSummary(t *testing.T) {
	repo := &fakeBookingRepo{reminders: []model.BookingReminder{{BookingID: 5, Email: "a@example.com"}}}
	s := NewBookingReminderStrategy(common.TASK_BOOKING_REMINDER_1DAY, 1, logger.NewNop(), repo, &fakeMailer{}, time.UTC)

	res, err := s.Execute(context.Background(), broker.Message{})
	require.NoError(t, err)

	var summary dto.ReminderResult
	require.NoError(t, json.Unmarshal([]byte(res.Output), &summary))
	assert.Equal(t, dto.ReminderResult{DaysAhead: 1, Found: 1, Sent: 1}, summary)
	assert.Equal(t, common.TASK_BOOKING_REMINDER_1DAY, s.Name())
}

func TestBookingConfirmationStrategy_Execute(t *testing.T) {
	m := &fakeMailer{}
	s := NewBookingConfirmationStrategy(logger.NewNop(), m)

	msg, err := broker.NewMessage(common.TASK_BOOKING_CONFIRMATION, BookingConfirmationArgs{
		BookingID: 9,
		Email:     "guest@example.com",
		RoomID:    4,
		DateFrom:  time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		DateTo:    time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		TotalCost: 9000,
	})
	require.NoError(t, err)

	res, err := s.Execute(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, int32(TASK_EXIT_CODE_SUCCESS), res.ExitCode)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "guest@example.com", m.sent[0].To)
	assert.Contains(t, m.sent[0].Body, "9000")

	_, err = s.Execute(context.Background(), broker.Message{Args: json.RawMessage(`{`)})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(NewPeriodicStrategy(logger.NewNop(), nil, 0))
	s, ok := r[common.TASK_PERIODIC]
	require.True(t, ok)

	res, err := s.Execute(context.Background(), broker.Message{ID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Output)
	assert.Equal(t, []string{common.TASK_PERIODIC}, r.Names())
}

type fakeTaskRunRepo struct {
	cutoffs []time.Time
}

func (f *fakeTaskRunRepo) Create(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error {
	return nil
}

func (f *fakeTaskRunRepo) Update(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error {
	return nil
}

func (f *fakeTaskRunRepo) DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	f.cutoffs = append(f.cutoffs, date)
	return 3, nil
}

func TestPeriodicStrategy_PrunesHourly(t *testing.T) {
	repo := &fakeTaskRunRepo{}
	s := NewPeriodicStrategy(logger.NewNop(), repo, 7*24*time.Hour)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, err := s.Execute(context.Background(), broker.Message{ID: "x"})
		require.NoError(t, err)
		now = now.Add(5 * time.Second)
	}
	require.Len(t, repo.cutoffs, 1)
	assert.Equal(t, time.Date(2026, 10, 11, 9, 0, 0, 0, time.UTC), repo.cutoffs[0])

	now = now.Add(time.Hour)
	_, err := s.Execute(context.Background(), broker.Message{ID: "y"})
	require.NoError(t, err)
	assert.Len(t, repo.cutoffs, 2)
}
