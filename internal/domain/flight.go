package domain

import "time"

// Flight is one booked reservation, identified externally by its record locator.
type Flight struct {
	ID            int64
	RecordLocator string
	FromCity      string
	ToCity        string
	DepartureDate time.Time
	ReturnDate    *time.Time
	AircraftType  string
	Passengers    []Passenger
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RoundTrip reports whether the flight has a return leg.
func (f *Flight) RoundTrip() bool {
	return f.ReturnDate != nil
}
