package model

import "gorm.io/datatypes"

type Room struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	HotelID     uint           `gorm:"not null" json:"hotel_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       int            `gorm:"not null" json:"price"`
	Services    datatypes.JSON `gorm:"type:jsonb" json:"services"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	ImageID     *int           `json:"image_id"`
}

func (Room) TableName() string {
	return "rooms"
}

type RoomWithAvailability struct {
	Room
	TotalCost int `json:"total_cost"`
	RoomsLeft int `json:"rooms_left"`
}
