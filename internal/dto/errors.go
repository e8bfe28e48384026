package dto

import (
	"errors"
	"net/http"
)

// AppError is a domain error that knows its HTTP status.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

var (
	ErrUserAlreadyExists        = newAppError(http.StatusConflict, "User already exists")
	ErrIncorrectEmailOrPassword = newAppError(http.StatusUnauthorized, "Incorrect email or password")
	ErrTokenExpired             = newAppError(http.StatusUnauthorized, "Token has expired")
	ErrTokenAbsent              = newAppError(http.StatusUnauthorized, "Token is absent")
	ErrIncorrectTokenFormat     = newAppError(http.StatusUnauthorized, "Incorrect token format")
	ErrUserIsNotPresent         = newAppError(http.StatusUnauthorized, "User is not present")
	ErrRoomFullyBooked          = newAppError(http.StatusConflict, "No rooms left")
	ErrRoomNotFound             = newAppError(http.StatusNotFound, "Room not found")
	ErrHotelNotFound            = newAppError(http.StatusNotFound, "Hotel not found")
	ErrBookingNotFound          = newAppError(http.StatusNotFound, "Booking not found")
	ErrDateFromAfterDateTo      = newAppError(http.StatusBadRequest, "Check-in date cannot be later than check-out date")
	ErrStayTooLong              = newAppError(http.StatusBadRequest, "Stay cannot be longer than 30 days")
	ErrUnknownImportTable       = newAppError(http.StatusBadRequest, "Unknown table for import")
	ErrInvalidImportFile        = newAppError(http.StatusUnprocessableEntity, "Import file is malformed")
)

// AsAppError unwraps err into an *AppError when it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
