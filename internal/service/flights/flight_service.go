package flights

import (
	"context"
	"errors"
	"strings"

	"github.com/mei131412/gui-airline/internal/domain"
	"github.com/mei131412/gui-airline/internal/repository"
)

type FlightUseCase interface {
	Add(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Search(ctx context.Context, destination, date string) ([]domain.FlightSummary, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

// Cache holds the flight listing between mutations. Nil-safe: a nil cache
// means every search hits the registry.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.FlightSummary, error)
	SetFlights(ctx context.Context, summaries []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

type CreateFlightInput struct {
	FlightNumber  string `json:"flight_number"`
	Date          string `json:"flight_date"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Gate          string `json:"gate"`
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Add(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	input.FlightNumber = strings.TrimSpace(input.FlightNumber)
	input.Destination = strings.TrimSpace(input.Destination)
	if input.FlightNumber == "" {
		return nil, errors.New("flight number is required")
	}
	if input.Destination == "" {
		return nil, errors.New("destination is required")
	}
	if input.Gate == "" {
		return nil, errors.New("gate is required")
	}
	// "HH:MM" strings compare chronologically.
	if input.ArrivalTime != "" && input.DepartureTime != "" && input.ArrivalTime <= input.DepartureTime {
		return nil, errors.New("arrival time must be after departure time")
	}

	flight := domain.NewFlight(input.FlightNumber, input.Date, input.Destination,
		input.DepartureTime, input.ArrivalTime, input.Gate)
	if err := s.repo.Add(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

// Search lists flights matching the optional destination and date filters.
// The unfiltered listing is served from the cache when warm.
func (s *FlightService) Search(ctx context.Context, destination, date string) ([]domain.FlightSummary, error) {
	unfiltered := destination == "" && date == ""
	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Find(ctx, destination, date)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.FlightSummary, 0, len(flights))
	for _, flight := range flights {
		summaries = append(summaries, flight.Summary())
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetFlights(ctx, summaries)
	}
	return summaries, nil
}

func (s *FlightService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, number)
}

var _ FlightUseCase = (*FlightService)(nil)
