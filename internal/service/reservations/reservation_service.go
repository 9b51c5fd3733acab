package reservations

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mei131412/gui-airline/internal/domain"
	"github.com/mei131412/gui-airline/internal/kafka"
	"github.com/mei131412/gui-airline/internal/repository"
)

type ReservationUseCase interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
}

var ErrSeatHeld = errors.New("seat is temporarily held")

// Cache provides short-lived distributed seat holds and drops the cached
// flight listing when seat availability changes. Nil-safe: without a cache
// the in-memory seat test-and-set is the only guard.
type Cache interface {
	AcquireSeatHold(ctx context.Context, flightNumber, seatNumber string, ttl time.Duration) (bool, error)
	ReleaseSeatHold(ctx context.Context, flightNumber, seatNumber string) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReservationService struct {
	reservations       repository.ReservationRepository
	flights            repository.FlightRepository
	gateway            domain.Gateway
	cache              Cache
	producer           Producer
	reservationsTopic  string
	notificationsTopic string
	holdTTL            time.Duration
}

type CreateReservationInput struct {
	FlightNumber   string `json:"flight_number"`
	SeatNumber     string `json:"seat_number"`
	PassportNumber string `json:"passport_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Age            int    `json:"age"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PaymentMethod  string `json:"payment_method"`
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func NewReservationService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	gateway domain.Gateway,
	cache Cache,
	producer Producer,
	reservationsTopic string,
	holdTTL time.Duration,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		reservations:      reservations,
		flights:           flights,
		gateway:           gateway,
		cache:             cache,
		producer:          producer,
		reservationsTopic: reservationsTopic,
		holdTTL:           holdTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books a seat end to end: the passenger record, the reservation, the
// charge and the seat occupation. A reservation that fails to confirm is
// discarded and never recorded.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	if input.SeatNumber == "" {
		return nil, errors.New("seat number is required")
	}
	if input.PassportNumber == "" {
		return nil, errors.New("passport number is required")
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, errors.New("passenger name is required")
	}
	if input.PaymentMethod == "" {
		return nil, errors.New("payment method is required")
	}

	flight, err := s.flights.GetByNumber(ctx, input.FlightNumber)
	if err != nil {
		return nil, err
	}

	held := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatHold(ctx, flight.Number, input.SeatNumber, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSeatHeld
		}
		held = true
	}
	releaseHold := func() {
		if held {
			_ = s.cache.ReleaseSeatHold(ctx, flight.Number, input.SeatNumber)
		}
	}

	passenger := domain.NewPassenger(input.PassportNumber, input.FirstName, input.LastName,
		input.Age, input.Email, input.Phone)
	reservation := domain.NewReservation(passenger, flight, input.SeatNumber)

	if err := reservation.Confirm(ctx, input.PaymentMethod, s.gateway); err != nil {
		releaseHold()
		return nil, err
	}

	if err := s.reservations.Add(ctx, reservation); err != nil {
		// Roll the booking back so the seat does not stay occupied by an
		// unrecorded reservation.
		_ = reservation.Cancel(ctx, s.gateway)
		releaseHold()
		return nil, err
	}

	s.publish(ctx, "reservation_confirmed", reservation)
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	releaseHold()
	return reservation, nil
}

func (s *ReservationService) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

// Cancel frees the seat and refunds the payment of a confirmed reservation.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := reservation.Cancel(ctx, s.gateway); err != nil {
		return nil, err
	}
	s.publish(ctx, "reservation_cancelled", reservation)
	if s.cache != nil {
		_ = s.cache.ReleaseSeatHold(ctx, reservation.Flight.Number, reservation.SeatNumber)
		_ = s.cache.InvalidateFlights(ctx)
	}
	return reservation, nil
}

func (s *ReservationService) List(ctx context.Context) ([]*domain.Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *ReservationService) publish(ctx context.Context, eventType string, reservation *domain.Reservation) {
	if s.producer == nil || s.reservationsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		FlightNumber:  reservation.Flight.Number,
		SeatNumber:    reservation.SeatNumber,
		Passenger:     reservation.Passenger.FullName(),
		Email:         reservation.Passenger.Email,
		Status:        string(reservation.Status()),
		CreatedAt:     reservation.CreatedAt,
	}
	if pay := reservation.Payment(); pay != nil {
		event.Amount = pay.Amount
		event.Method = pay.Method
	}
	if err := s.producer.Publish(ctx, s.reservationsTopic, reservation.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for reservation %s: %v", eventType, reservation.ID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, reservation.ID, event); err != nil {
			log.Printf("WARNING: failed to publish notification for reservation %s: %v", reservation.ID, err)
		}
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
