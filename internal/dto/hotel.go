package dto

type SearchHotelsRequest struct {
	Location string `param:"location" validate:"required"`
	DateRange
}

type SearchRoomsRequest struct {
	HotelID uint `param:"hotel_id" validate:"required"`
	DateRange
}
