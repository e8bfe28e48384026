package model

import "time"

type Booking struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   uint      `gorm:"not null" json:"room_id"`
	UserID   uint      `gorm:"not null" json:"user_id"`
	DateFrom time.Time `gorm:"type:date;not null" json:"date_from"`
	DateTo   time.Time `gorm:"type:date;not null" json:"date_to"`
	Price    int       `gorm:"not null" json:"price"`
	// Generated by the database from the dates and price.
	TotalCost int `gorm:"->" json:"total_cost"`
	TotalDays int `gorm:"->" json:"total_days"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingReminder is a booking due soon together with where to send the reminder.
type BookingReminder struct {
	BookingID uint      `json:"booking_id"`
	Email     string    `json:"email"`
	HotelName string    `json:"hotel_name"`
	RoomName  string    `json:"room_name"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
}
