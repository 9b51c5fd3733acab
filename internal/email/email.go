package email

import (
	"context"
	"log"

	"github.com/mei131412/gui-airline/internal/kafka"
)

// Sender delivers reservation notifications. Delivery is a log line; the
// reservation engine only needs a sink for the notification flow.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	if event.Email == "" {
		return nil
	}
	log.Printf("send email to %s: %s for flight %s seat %s (reservation %s)",
		event.Email, event.Type, event.FlightNumber, event.SeatNumber, event.ReservationID)
	return nil
}
