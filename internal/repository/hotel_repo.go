package repository

import (
	"context"
	"errors"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/utils"
	"time"

	"gorm.io/gorm"
)

type HotelRepository interface {
	SearchWithRoomsLeft(ctx context.Context, location string, dateFrom, dateTo time.Time, opts ...utils.DBOption) ([]model.HotelWithRoomsLeft, error)
	FindByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Hotel, error)
}

type hotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

const searchHotelsQuery = `
SELECT hotels.*, hotels.rooms_quantity - COALESCE(booked.cnt, 0) AS rooms_left
FROM hotels
LEFT JOIN (
	SELECT rooms.hotel_id, COUNT(bookings.id) AS cnt
	FROM bookings
	JOIN rooms ON rooms.id = bookings.room_id
	WHERE bookings.date_from < @date_to AND bookings.date_to > @date_from
	GROUP BY rooms.hotel_id
) AS booked ON booked.hotel_id = hotels.id
WHERE hotels.location ILIKE @location
	AND hotels.rooms_quantity - COALESCE(booked.cnt, 0) > 0
ORDER BY hotels.id`

// SearchWithRoomsLeft lists hotels in location with at least one room free
// for the whole [dateFrom, dateTo) stay.
func (r *hotelRepository) SearchWithRoomsLeft(ctx context.Context, location string, dateFrom, dateTo time.Time, opts ...utils.DBOption) ([]model.HotelWithRoomsLeft, error) {
	var hotels []model.HotelWithRoomsLeft
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Raw(searchHotelsQuery, map[string]interface{}{
			"location":  "%" + location + "%",
			"date_from": dateFrom,
			"date_to":   dateTo,
		}).
		Scan(&hotels).Error
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Hotel, error) {
	var hotel model.Hotel
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).First(&hotel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}
