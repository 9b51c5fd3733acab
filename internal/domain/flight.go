package domain

import (
	"fmt"
	"sync"
)

// Cabin layout shared by every flight: rows 1-2 are First, 3-7 Business,
// 8-30 Economy. First and Business rows skip the C/D pair.
var (
	premiumColumns = []string{"A", "B", "E", "F"}
	economyColumns = []string{"A", "B", "C", "D", "E", "F"}
)

// Flight owns the seat inventory for one scheduled departure. Schedule fields
// are immutable after construction; the seat map and passenger list are
// guarded by mu. Dates are "YYYY-MM-DD" and times "HH:MM" strings, matched
// exactly by search.
type Flight struct {
	Number        string
	Date          string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	Gate          string

	mu         sync.RWMutex
	seats      map[string]*Seat
	order      []string
	passengers []*Passenger
}

// FlightSummary is the cacheable availability view of a flight.
type FlightSummary struct {
	FlightNumber   string `json:"flight_number"`
	Date           string `json:"flight_date"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Gate           string `json:"gate"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

func NewFlight(number, date, destination, departureTime, arrivalTime, gate string) *Flight {
	f := &Flight{
		Number:        number,
		Date:          date,
		Destination:   destination,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		Gate:          gate,
		seats:         make(map[string]*Seat),
	}
	f.initializeSeats()
	return f
}

func (f *Flight) initializeSeats() {
	addRows := func(from, to int, columns []string) {
		for row := from; row <= to; row++ {
			for _, col := range columns {
				number := fmt.Sprintf("%d%s", row, col)
				f.seats[number] = newSeat(row, number)
				f.order = append(f.order, number)
			}
		}
	}
	addRows(1, 2, premiumColumns)
	addRows(3, 7, premiumColumns)
	addRows(8, 30, economyColumns)
}

// SeatCount returns the total number of seats in the cabin.
func (f *Flight) SeatCount() int {
	return len(f.order)
}

// Seat returns a copy of the named seat.
func (f *Flight) Seat(number string) (Seat, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	seat, ok := f.seats[number]
	if !ok {
		return Seat{}, false
	}
	return *seat, true
}

// Seats returns copies of every seat in cabin order.
func (f *Flight) Seats() []Seat {
	f.mu.RLock()
	defer f.mu.RUnlock()
	seats := make([]Seat, 0, len(f.order))
	for _, number := range f.order {
		seats = append(seats, *f.seats[number])
	}
	return seats
}

// SeatMap returns a seat-number-to-seat snapshot of the cabin.
func (f *Flight) SeatMap() map[string]Seat {
	f.mu.RLock()
	defer f.mu.RUnlock()
	seats := make(map[string]Seat, len(f.seats))
	for number, seat := range f.seats {
		seats[number] = *seat
	}
	return seats
}

// AvailableSeats returns copies of the unoccupied seats in cabin order.
func (f *Flight) AvailableSeats() []Seat {
	f.mu.RLock()
	defer f.mu.RUnlock()
	available := make([]Seat, 0, len(f.order))
	for _, number := range f.order {
		if seat := f.seats[number]; !seat.Occupied {
			available = append(available, *seat)
		}
	}
	return available
}

// SeatPrice returns the fare of the named seat.
func (f *Flight) SeatPrice(number string) (int64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	seat, ok := f.seats[number]
	if !ok {
		return 0, false
	}
	return seat.Price, true
}

// AssignSeat occupies the named seat and records the passenger. The check and
// the occupation happen in one critical section, so of two concurrent calls
// for the same seat exactly one succeeds. Unknown and already-occupied seats
// report false with no mutation.
func (f *Flight) AssignSeat(number string, passenger *Passenger) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[number]
	if !ok || seat.Occupied {
		return false
	}
	seat.Occupy()
	f.passengers = append(f.passengers, passenger)
	return true
}

// ReleaseSeat frees the named seat. Releasing a free seat keeps it free.
func (f *Flight) ReleaseSeat(number string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[number]
	if !ok {
		return false
	}
	seat.Empty()
	return true
}

// unassignSeat rolls back a failed confirmation: the seat is freed and the
// passenger entry added by AssignSeat removed again.
func (f *Flight) unassignSeat(number string, passenger *Passenger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seat, ok := f.seats[number]; ok {
		seat.Empty()
	}
	for i := len(f.passengers) - 1; i >= 0; i-- {
		if f.passengers[i] == passenger {
			f.passengers = append(f.passengers[:i], f.passengers[i+1:]...)
			return
		}
	}
}

// Passengers returns the passengers assigned to this flight.
func (f *Flight) Passengers() []*Passenger {
	f.mu.RLock()
	defer f.mu.RUnlock()
	passengers := make([]*Passenger, len(f.passengers))
	copy(passengers, f.passengers)
	return passengers
}

// Summary builds the availability view used by listings and the cache.
func (f *Flight) Summary() FlightSummary {
	f.mu.RLock()
	defer f.mu.RUnlock()
	available := 0
	for _, seat := range f.seats {
		if !seat.Occupied {
			available++
		}
	}
	return FlightSummary{
		FlightNumber:   f.Number,
		Date:           f.Date,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Gate:           f.Gate,
		TotalSeats:     len(f.seats),
		AvailableSeats: available,
	}
}
