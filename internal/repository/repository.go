package repository

import (
	"gorm.io/gorm"
)

type Repository struct {
	UserRepo    UserRepository
	HotelRepo   HotelRepository
	RoomRepo    RoomRepository
	BookingRepo BookingRepository
	TaskRunRepo TaskRunRepository
	AdminRepo   AdminRepository
	ImportRepo  ImportRepository
	UnitOfWork  UnitOfWork
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		UserRepo:    NewUserRepository(db),
		HotelRepo:   NewHotelRepository(db),
		RoomRepo:    NewRoomRepository(db),
		BookingRepo: NewBookingRepository(db),
		TaskRunRepo: NewTaskRunRepository(db),
		AdminRepo:   NewAdminRepository(db),
		ImportRepo:  NewImportRepository(db),
		UnitOfWork:  NewUnitOfWork(db),
	}
}
