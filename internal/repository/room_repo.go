package repository

import (
	"context"
	"errors"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/utils"
	"time"

	"gorm.io/gorm"
)

type RoomRepository interface {
	ListWithRoomsLeft(ctx context.Context, hotelID uint, dateFrom, dateTo time.Time, opts ...utils.DBOption) ([]model.RoomWithAvailability, error)
	FindByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Room, error)
	RoomsLeft(ctx context.Context, roomID uint, dateFrom, dateTo time.Time, opts ...utils.DBOption) (int, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

const listRoomsQuery = `
SELECT rooms.*, rooms.quantity - COALESCE(booked.cnt, 0) AS rooms_left
FROM rooms
LEFT JOIN (
	SELECT room_id, COUNT(id) AS cnt
	FROM bookings
	WHERE date_from < @date_to AND date_to > @date_from
	GROUP BY room_id
) AS booked ON booked.room_id = rooms.id
WHERE rooms.hotel_id = @hotel_id
ORDER BY rooms.id`

const roomsLeftQuery = `
SELECT rooms.quantity - (
	SELECT COUNT(id) FROM bookings
	WHERE room_id = @room_id AND date_from < @date_to AND date_to > @date_from
) AS rooms_left
FROM rooms
WHERE rooms.id = @room_id`

// ListWithRoomsLeft does not fill TotalCost, the caller knows the stay length.
func (r *roomRepository) ListWithRoomsLeft(ctx context.Context, hotelID uint, dateFrom, dateTo time.Time, opts ...utils.DBOption) ([]model.RoomWithAvailability, error) {
	var rooms []model.RoomWithAvailability
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Raw(listRoomsQuery, map[string]interface{}{
			"hotel_id":  hotelID,
			"date_from": dateFrom,
			"date_to":   dateTo,
		}).
		Scan(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Room, error) {
	var room model.Room
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// RoomsLeft returns how many units of the room are free for the stay.
// gorm.ErrRecordNotFound is returned for an unknown room.
func (r *roomRepository) RoomsLeft(ctx context.Context, roomID uint, dateFrom, dateTo time.Time, opts ...utils.DBOption) (int, error) {
	var left []int
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Raw(roomsLeftQuery, map[string]interface{}{
			"room_id":   roomID,
			"date_from": dateFrom,
			"date_to":   dateTo,
		}).
		Scan(&left).Error
	if err != nil {
		return 0, err
	}
	if len(left) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return left[0], nil
}
