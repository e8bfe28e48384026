package model

import "gorm.io/datatypes"

type Hotel struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Location      string         `gorm:"not null" json:"location"`
	Services      datatypes.JSON `gorm:"type:jsonb" json:"services"`
	RoomsQuantity int            `gorm:"not null" json:"rooms_quantity"`
	ImageID       *int           `json:"image_id"`
}

func (Hotel) TableName() string {
	return "hotels"
}

// HotelWithRoomsLeft is a hotel joined with the number of rooms still free
// for a date range.
type HotelWithRoomsLeft struct {
	Hotel
	RoomsLeft int `json:"rooms_left"`
}
