package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mei131412/gui-airline/internal/domain"
	"github.com/mei131412/gui-airline/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Add(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Add(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]*domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Find(ctx context.Context, destination, date string) ([]*domain.Flight, error) {
	args := m.Called(ctx, destination, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) AcquireSeatHold(ctx context.Context, flightNumber, seatNumber string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightNumber, seatNumber, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseSeatHold(ctx context.Context, flightNumber, seatNumber string) error {
	args := m.Called(ctx, flightNumber, seatNumber)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type decliningGateway struct{}

func (decliningGateway) Charge(ctx context.Context, amount int64, method string) error {
	return errors.New("card declined")
}
func (decliningGateway) Refund(ctx context.Context, amount int64, method string) error { return nil }

func validInput() CreateReservationInput {
	return CreateReservationInput{
		FlightNumber:   "SA100",
		SeatNumber:     "1A",
		PassportNumber: "P123456",
		FirstName:      "Hana",
		LastName:       "Sato",
		Age:            30,
		Email:          "hana@example.com",
		PaymentMethod:  "credit card",
	}
}

func TestReservationService_Create_Success(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewReservationService(
		mockReservations,
		mockFlights,
		payment.NewInProcessGateway(),
		mockCache,
		mockProducer,
		"reservations",
		time.Minute,
		WithNotificationsTopic("notifications"),
	)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")

	mockFlights.On("GetByNumber", ctx, "SA100").Return(flight, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, "SA100", "1A", time.Minute).Return(true, nil).Once()
	mockReservations.On("Add", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "reservations", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", mock.Anything, mock.Anything).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()
	mockCache.On("ReleaseSeatHold", ctx, "SA100", "1A").Return(nil).Once()

	reservation, err := service.Create(ctx, validInput())

	assert.NoError(t, err)
	assert.NotNil(t, reservation)
	assert.Equal(t, domain.ReservationStatusConfirmed, reservation.Status())
	assert.Equal(t, int64(10_000_000), reservation.Payment().Amount)
	assert.Equal(t, domain.PaymentStatusCompleted, reservation.Payment().Status())

	seat, _ := flight.Seat("1A")
	assert.True(t, seat.Occupied)

	mockFlights.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockReservations.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestReservationService_Create_ValidationErrors(t *testing.T) {
	service := NewReservationService(nil, nil, payment.NewInProcessGateway(), nil, nil, "", time.Minute)
	ctx := context.Background()

	testCases := []struct {
		name        string
		mutate      func(*CreateReservationInput)
		expectedErr string
	}{
		{"missing seat", func(i *CreateReservationInput) { i.SeatNumber = "" }, "seat number is required"},
		{"missing passport", func(i *CreateReservationInput) { i.PassportNumber = "" }, "passport number is required"},
		{"missing first name", func(i *CreateReservationInput) { i.FirstName = "" }, "passenger name is required"},
		{"missing last name", func(i *CreateReservationInput) { i.LastName = "" }, "passenger name is required"},
		{"missing payment method", func(i *CreateReservationInput) { i.PaymentMethod = "" }, "payment method is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			reservation, err := service.Create(ctx, input)
			assert.Nil(t, reservation)
			assert.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestReservationService_Create_UnknownFlight(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	service := NewReservationService(&MockReservationRepository{}, mockFlights,
		payment.NewInProcessGateway(), nil, nil, "", time.Minute)

	ctx := context.Background()
	mockFlights.On("GetByNumber", ctx, "SA100").Return(nil, domain.ErrFlightNotFound).Once()

	reservation, err := service.Create(ctx, validInput())
	assert.Nil(t, reservation)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	mockFlights.AssertExpectations(t)
}

func TestReservationService_Create_SeatHeld(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewReservationService(&MockReservationRepository{}, mockFlights,
		payment.NewInProcessGateway(), mockCache, nil, "", time.Minute)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")
	mockFlights.On("GetByNumber", ctx, "SA100").Return(flight, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, "SA100", "1A", time.Minute).Return(false, nil).Once()

	reservation, err := service.Create(ctx, validInput())
	assert.Nil(t, reservation)
	assert.ErrorIs(t, err, ErrSeatHeld)

	seat, _ := flight.Seat("1A")
	assert.False(t, seat.Occupied)
	mockCache.AssertExpectations(t)
}

func TestReservationService_Create_SeatOccupied(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewReservationService(mockReservations, mockFlights,
		payment.NewInProcessGateway(), mockCache, nil, "", time.Minute)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")
	flight.AssignSeat("1A", domain.NewPassenger("P9", "Ken", "Mori", 41, "", ""))

	mockFlights.On("GetByNumber", ctx, "SA100").Return(flight, nil).Once()
	mockCache.On("AcquireSeatHold", ctx, "SA100", "1A", time.Minute).Return(true, nil).Once()
	mockCache.On("ReleaseSeatHold", ctx, "SA100", "1A").Return(nil).Once()

	reservation, err := service.Create(ctx, validInput())
	assert.Nil(t, reservation)
	assert.ErrorIs(t, err, domain.ErrSeatOccupied)

	mockReservations.AssertNotCalled(t, "Add")
	mockCache.AssertExpectations(t)
}

func TestReservationService_Create_ChargeFailure(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	service := NewReservationService(mockReservations, mockFlights,
		decliningGateway{}, nil, nil, "", time.Minute)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")
	mockFlights.On("GetByNumber", ctx, "SA100").Return(flight, nil).Once()

	reservation, err := service.Create(ctx, validInput())
	assert.Nil(t, reservation)
	assert.Error(t, err)

	// Nothing is recorded and the seat is free again.
	seat, _ := flight.Seat("1A")
	assert.False(t, seat.Occupied)
	mockReservations.AssertNotCalled(t, "Add")
}

func TestReservationService_Cancel_Success(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	mockProducer := &MockProducer{}
	service := NewReservationService(mockReservations, &MockFlightRepository{},
		payment.NewInProcessGateway(), nil, mockProducer, "reservations", time.Minute)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")
	reservation := domain.NewReservation(domain.NewPassenger("P1", "Hana", "Sato", 30, "", ""), flight, "1A")
	assert.NoError(t, reservation.Confirm(ctx, "credit card", payment.NewInProcessGateway()))

	mockReservations.On("GetByID", ctx, reservation.ID).Return(reservation, nil).Once()
	mockProducer.On("Publish", ctx, "reservations", reservation.ID, mock.Anything).Return(nil).Once()

	got, err := service.Cancel(ctx, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, got.Status())
	assert.Equal(t, domain.PaymentStatusRefunded, got.Payment().Status())

	seat, _ := flight.Seat("1A")
	assert.False(t, seat.Occupied)

	mockReservations.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestReservationService_Cancel_DropsCachedFlights(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	mockCache := &MockCache{}
	service := NewReservationService(mockReservations, &MockFlightRepository{},
		payment.NewInProcessGateway(), mockCache, nil, "", time.Minute)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")
	reservation := domain.NewReservation(domain.NewPassenger("P1", "Hana", "Sato", 30, "", ""), flight, "8A")
	assert.NoError(t, reservation.Confirm(ctx, "credit card", payment.NewInProcessGateway()))

	mockReservations.On("GetByID", ctx, reservation.ID).Return(reservation, nil).Once()
	mockCache.On("ReleaseSeatHold", ctx, "SA100", "8A").Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	got, err := service.Cancel(ctx, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, got.Status())
	mockCache.AssertExpectations(t)
}

func TestReservationService_Cancel_NotConfirmed(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	mockProducer := &MockProducer{}
	service := NewReservationService(mockReservations, &MockFlightRepository{},
		payment.NewInProcessGateway(), nil, mockProducer, "reservations", time.Minute)

	ctx := context.Background()
	flight := domain.NewFlight("SA100", "2024-01-01", "Tokyo", "09:00", "13:30", "G12")
	reservation := domain.NewReservation(domain.NewPassenger("P1", "Hana", "Sato", 30, "", ""), flight, "1A")

	mockReservations.On("GetByID", ctx, reservation.ID).Return(reservation, nil).Once()

	got, err := service.Cancel(ctx, reservation.ID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrReservationNotConfirmed)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestReservationService_Cancel_NotFound(t *testing.T) {
	mockReservations := &MockReservationRepository{}
	service := NewReservationService(mockReservations, &MockFlightRepository{},
		payment.NewInProcessGateway(), nil, nil, "", time.Minute)

	ctx := context.Background()
	mockReservations.On("GetByID", ctx, "missing").Return(nil, domain.ErrReservationNotFound).Once()

	got, err := service.Cancel(ctx, "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}
