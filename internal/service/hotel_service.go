package service

import (
	"context"
	"fmt"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/logger"
	"hotel-booking/pkg/utils"
)

type HotelService interface {
	Search(ctx context.Context, req dto.SearchHotelsRequest) ([]model.HotelWithRoomsLeft, error)
	Get(ctx context.Context, hotelID uint) (*model.Hotel, error)
	ListRooms(ctx context.Context, req dto.SearchRoomsRequest) ([]model.RoomWithAvailability, error)
}

type hotelService struct {
	log       *logger.Logger
	hotelRepo repository.HotelRepository
	roomRepo  repository.RoomRepository
}

func NewHotelService(log *logger.Logger, hotelRepo repository.HotelRepository, roomRepo repository.RoomRepository) HotelService {
	return &hotelService{log: log, hotelRepo: hotelRepo, roomRepo: roomRepo}
}

func (s *hotelService) Search(ctx context.Context, req dto.SearchHotelsRequest) ([]model.HotelWithRoomsLeft, error) {
	from, to, err := req.Parse()
	if err != nil {
		return nil, err
	}
	hotels, err := s.hotelRepo.SearchWithRoomsLeft(ctx, req.Location, from, to)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to search hotels", logger.ErrorField(err), logger.StringField("location", req.Location))
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	if hotels == nil {
		hotels = []model.HotelWithRoomsLeft{}
	}
	return hotels, nil
}

func (s *hotelService) Get(ctx context.Context, hotelID uint) (*model.Hotel, error) {
	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	if hotel == nil {
		return nil, dto.ErrHotelNotFound
	}
	return hotel, nil
}

// ListRooms fills TotalCost for the requested stay.
func (s *hotelService) ListRooms(ctx context.Context, req dto.SearchRoomsRequest) ([]model.RoomWithAvailability, error) {
	from, to, err := req.Parse()
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.ListWithRoomsLeft(ctx, req.HotelID, from, to)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list rooms", logger.ErrorField(err), logger.IntField("hotel_id", int(req.HotelID)))
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	days := utils.DaysBetween(from, to)
	for i := range rooms {
		rooms[i].TotalCost = rooms[i].Price * days
	}
	if rooms == nil {
		rooms = []model.RoomWithAvailability{}
	}
	return rooms, nil
}
