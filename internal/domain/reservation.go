package domain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "Pending"
	ReservationStatusConfirmed ReservationStatus = "Confirmed"
	ReservationStatusCancelled ReservationStatus = "Cancelled"
)

// Reservation binds a passenger to a seat on a flight and walks the
// Pending -> Confirmed -> Cancelled lifecycle. Cancelled is terminal.
// The reservation is Confirmed only while it owns a Completed payment and
// its seat is occupied.
type Reservation struct {
	ID         string
	Passenger  *Passenger
	Flight     *Flight
	SeatNumber string
	CreatedAt  time.Time

	mu      sync.Mutex
	status  ReservationStatus
	payment *Payment
}

func NewReservation(passenger *Passenger, flight *Flight, seatNumber string) *Reservation {
	return &Reservation{
		ID:         uuid.NewString(),
		Passenger:  passenger,
		Flight:     flight,
		SeatNumber: seatNumber,
		CreatedAt:  time.Now(),
		status:     ReservationStatusPending,
	}
}

func (r *Reservation) Status() ReservationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Reservation) Payment() *Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payment
}

// Confirm charges the seat fare and occupies the seat. The seat assignment is
// the gate: it is a single test-and-set on the flight, so two reservations
// confirming the same seat cannot both win. A gateway failure rolls the seat
// assignment back and leaves the reservation Pending.
func (r *Reservation) Confirm(ctx context.Context, method string, gateway Gateway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != ReservationStatusPending {
		return ErrReservationNotPending
	}
	price, ok := r.Flight.SeatPrice(r.SeatNumber)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSeat, r.SeatNumber)
	}
	if !r.Flight.AssignSeat(r.SeatNumber, r.Passenger) {
		return ErrSeatOccupied
	}

	pay := NewPayment(price, method)
	if err := gateway.Charge(ctx, pay.Amount, pay.Method); err != nil {
		r.Flight.unassignSeat(r.SeatNumber, r.Passenger)
		return fmt.Errorf("charge payment: %w", err)
	}
	pay.MarkCompleted()

	r.payment = pay
	r.status = ReservationStatusConfirmed
	return nil
}

// Cancel frees the seat and refunds the payment. Only a Confirmed
// reservation can be cancelled; a refund rejection does not block the
// cancellation itself.
func (r *Reservation) Cancel(ctx context.Context, gateway Gateway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != ReservationStatusConfirmed {
		return ErrReservationNotConfirmed
	}

	r.status = ReservationStatusCancelled
	r.Flight.ReleaseSeat(r.SeatNumber)
	if r.payment != nil {
		if gateway != nil {
			_ = gateway.Refund(ctx, r.payment.Amount, r.payment.Method)
		}
		_ = r.payment.MarkRefunded()
	}
	return nil
}
