package domain

import "github.com/google/uuid"

// Passenger is the identity record of one traveler. Passport numbers are not
// deduplicated; two bookings with the same passport create two passengers.
type Passenger struct {
	ID             string `json:"id"`
	PassportNumber string `json:"passport_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Age            int    `json:"age"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

func NewPassenger(passportNumber, firstName, lastName string, age int, email, phone string) *Passenger {
	return &Passenger{
		ID:             uuid.NewString(),
		PassportNumber: passportNumber,
		FirstName:      firstName,
		LastName:       lastName,
		Age:            age,
		Email:          email,
		Phone:          phone,
	}
}

func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}
