package domain

import "errors"

var (
	ErrInvalidSeatNumber = errors.New("invalid seat number")

	ErrUnknownSeat  = errors.New("unknown seat")
	ErrSeatOccupied = errors.New("seat is already occupied")

	ErrReservationNotPending   = errors.New("reservation is not pending")
	ErrReservationNotConfirmed = errors.New("reservation is not confirmed")

	ErrDuplicateFlight     = errors.New("flight number already exists")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationNotFound = errors.New("reservation not found")
)
