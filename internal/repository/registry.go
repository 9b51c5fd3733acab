package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/mei131412/gui-airline/internal/domain"
)

type FlightRepository interface {
	Add(ctx context.Context, flight *domain.Flight) error
	List(ctx context.Context) ([]*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	Find(ctx context.Context, destination, date string) ([]*domain.Flight, error)
}

type ReservationRepository interface {
	Add(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
}

// Registry is the in-memory aggregate root owning every flight and
// reservation for the process lifetime. Flights keep their insertion order
// and are unique by flight number. There is no persisted form; a restart
// starts empty.
type Registry struct {
	mu           sync.RWMutex
	flights      []*domain.Flight
	byNumber     map[string]*domain.Flight
	reservations []*domain.Reservation
	byID         map[string]*domain.Reservation
}

func NewRegistry() *Registry {
	return &Registry{
		byNumber: make(map[string]*domain.Flight),
		byID:     make(map[string]*domain.Reservation),
	}
}

func (r *Registry) Add(ctx context.Context, flight *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byNumber[flight.Number]; exists {
		return domain.ErrDuplicateFlight
	}
	r.flights = append(r.flights, flight)
	r.byNumber[flight.Number] = flight
	return nil
}

func (r *Registry) List(ctx context.Context) ([]*domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flights := make([]*domain.Flight, len(r.flights))
	copy(flights, r.flights)
	return flights, nil
}

func (r *Registry) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flight, ok := r.byNumber[number]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return flight, nil
}

// Find filters by case-insensitive destination and exact date string. Empty
// filters are skipped; both present means both must match. Insertion order is
// preserved.
func (r *Registry) Find(ctx context.Context, destination, date string) ([]*domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*domain.Flight, 0, len(r.flights))
	for _, flight := range r.flights {
		if destination != "" && !strings.EqualFold(flight.Destination, destination) {
			continue
		}
		if date != "" && flight.Date != date {
			continue
		}
		matched = append(matched, flight)
	}
	return matched, nil
}

func (r *Registry) AddReservation(ctx context.Context, reservation *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations = append(r.reservations, reservation)
	r.byID[reservation.ID] = reservation
	return nil
}

func (r *Registry) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservation, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return reservation, nil
}

func (r *Registry) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservations := make([]*domain.Reservation, len(r.reservations))
	copy(reservations, r.reservations)
	return reservations, nil
}

// reservationRegistry adapts Registry to ReservationRepository; both views
// share the same underlying state.
type reservationRegistry struct{ *Registry }

func (r *Registry) Reservations() ReservationRepository {
	return reservationRegistry{r}
}

func (r reservationRegistry) Add(ctx context.Context, reservation *domain.Reservation) error {
	return r.AddReservation(ctx, reservation)
}

func (r reservationRegistry) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return r.GetReservation(ctx, id)
}

func (r reservationRegistry) List(ctx context.Context) ([]*domain.Reservation, error) {
	return r.ListReservations(ctx)
}

var (
	_ FlightRepository      = (*Registry)(nil)
	_ ReservationRepository = (reservationRegistry{})
)
