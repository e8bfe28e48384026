package repository

import (
	"context"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/utils"
	"time"

	"gorm.io/gorm"
)

type BookingRepository interface {
	FindByUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Booking, error)
	Create(ctx context.Context, booking *model.Booking, opts ...utils.DBOption) error
	DeleteForUser(ctx context.Context, userID, bookingID uint, opts ...utils.DBOption) (int64, error)
	FindRemindersStartingOn(ctx context.Context, date time.Time, opts ...utils.DBOption) ([]model.BookingReminder, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Booking, error) {
	var bookings []model.Booking
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("user_id = ?", userID).
		Order("date_from").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(booking).Error
}

// DeleteForUser only deletes bookings owned by userID and reports the affected rows.
func (r *bookingRepository) DeleteForUser(ctx context.Context, userID, bookingID uint, opts ...utils.DBOption) (int64, error) {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("id = ? AND user_id = ?", bookingID, userID).
		Delete(&model.Booking{})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) FindRemindersStartingOn(ctx context.Context, date time.Time, opts ...utils.DBOption) ([]model.BookingReminder, error) {
	var reminders []model.BookingReminder
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Table("bookings").
		Select("bookings.id AS booking_id, users.email AS email, hotels.name AS hotel_name, rooms.name AS room_name, bookings.date_from, bookings.date_to").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("bookings.date_from = ?", date.Format("2006-01-02")).
		Order("bookings.id").
		Scan(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}
