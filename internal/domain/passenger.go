package domain

// Passenger belongs to exactly one Flight and is removed with it.
type Passenger struct {
	ID            int64
	FlightID      int64
	FullName      string
	ContactNumber string
	SeatPref      string
	SeatNumber    string
	AirfarePrice  string
}
