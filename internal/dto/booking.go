package dto

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MaxStayDays = 30
)

// DateRange is the check-in/check-out pair shared by searches and bookings.
type DateRange struct {
	DateFrom string `query:"date_from" json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `query:"date_to" json:"date_to" validate:"required,datetime=2006-01-02"`
}

// Parse checks ordering and the maximum stay.
func (d DateRange) Parse() (time.Time, time.Time, error) {
	from, err := time.Parse(DateLayout, d.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_from: %w", err)
	}
	to, err := time.Parse(DateLayout, d.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_to: %w", err)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, ErrDateFromAfterDateTo
	}
	if to.Sub(from) > MaxStayDays*24*time.Hour {
		return time.Time{}, time.Time{}, ErrStayTooLong
	}
	return from, to, nil
}

type CreateBookingRequest struct {
	RoomID uint `json:"room_id" validate:"required"`
	DateRange
}
