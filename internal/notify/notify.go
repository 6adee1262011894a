package notify

import (
	"context"
	"fmt"

	"github.com/voxair/flightdesk/internal/kafka"
)

// Sender delivers booking notifications to the passenger's contact number.
// The current implementation only logs; a telephony provider plugs in here.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify %s (%s): booking %s %s %s -> %s\n",
		event.PassengerName, event.ContactNumber, event.RecordLocator, event.Type, event.FromCity, event.ToCity)
	return nil
}
