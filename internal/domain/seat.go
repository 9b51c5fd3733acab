package domain

import (
	"fmt"
	"strconv"
)

type FareClass string

const (
	FareClassFirst    FareClass = "First"
	FareClassBusiness FareClass = "Business"
	FareClassEconomy  FareClass = "Economy"
)

// Fare is the price and amenity bundle of one fare class. Prices are in the
// base currency unit (VND).
type Fare struct {
	Price     int64    `json:"price"`
	Amenities []string `json:"amenities"`
}

var fareTable = map[FareClass]Fare{
	FareClassFirst: {
		Price:     10_000_000,
		Amenities: []string{"15kg Luggage", "Premium Meals", "Private Line", "Private Restroom"},
	},
	FareClassBusiness: {
		Price:     5_000_000,
		Amenities: []string{"10kg Luggage", "Business Meals", "Priority Boarding"},
	},
	FareClassEconomy: {
		Price:     1_000_000,
		Amenities: []string{"2kg Luggage", "Standard Seat", "Basic Meal"},
	},
}

// FareClasses returns all fare classes in cabin order, front to back.
func FareClasses() []FareClass {
	return []FareClass{FareClassFirst, FareClassBusiness, FareClassEconomy}
}

// FareFor returns a copy of the fare bundle for the given class.
func FareFor(class FareClass) Fare {
	fare := fareTable[class]
	amenities := make([]string, len(fare.Amenities))
	copy(amenities, fare.Amenities)
	return Fare{Price: fare.Price, Amenities: amenities}
}

func fareClassForRow(row int) FareClass {
	switch {
	case row <= 2:
		return FareClassFirst
	case row <= 7:
		return FareClassBusiness
	default:
		return FareClassEconomy
	}
}

// Seat is one bookable unit. The fare class, price and amenities are fixed at
// construction; only the occupancy flag mutates, and only under the owning
// flight's lock.
type Seat struct {
	Number    string    `json:"seat_number"`
	Class     FareClass `json:"class"`
	Price     int64     `json:"price"`
	Amenities []string  `json:"amenities"`
	Occupied  bool      `json:"occupied"`
}

// NewSeat builds a seat from an identifier such as "12C". The fare class is
// derived from the row prefix. A number without a leading numeric row is a
// programming or data error and fails construction.
func NewSeat(number string) (*Seat, error) {
	row, err := seatRow(number)
	if err != nil {
		return nil, err
	}
	return newSeat(row, number), nil
}

func newSeat(row int, number string) *Seat {
	class := fareClassForRow(row)
	fare := FareFor(class)
	return &Seat{
		Number:    number,
		Class:     class,
		Price:     fare.Price,
		Amenities: fare.Amenities,
	}
}

func seatRow(number string) (int, error) {
	digits := 0
	for digits < len(number) && number[digits] >= '0' && number[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeatNumber, number)
	}
	row, err := strconv.Atoi(number[:digits])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeatNumber, number)
	}
	return row, nil
}

// Occupy and Empty are idempotent; repeated calls keep the flag as is.
func (s *Seat) Occupy() { s.Occupied = true }

func (s *Seat) Empty() { s.Occupied = false }
