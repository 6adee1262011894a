package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voxair/flightdesk/internal/domain"
	"github.com/voxair/flightdesk/internal/generate"
	"github.com/voxair/flightdesk/internal/kafka"
	"github.com/voxair/flightdesk/internal/repository"
	"github.com/voxair/flightdesk/internal/validate"
)

// Result is the two-part tool reply: a human-readable text for the voice
// agent to speak, and a structured payload for the dispatch layer. Domain
// rejections (bad input, unknown locator) set OK=false with a descriptive
// Text; a non-nil error is reserved for infrastructure failures.
type Result struct {
	OK   bool
	Text string
	Data map[string]interface{}
}

// Meta carries the dispatch layer's session token and metadata. It is
// accepted by every tool and ignored by the booking logic.
type Meta struct {
	Token string
	Data  map[string]interface{}
}

type BookingUseCase interface {
	Book(ctx context.Context, input BookInput, meta Meta) (Result, error)
	Lookup(ctx context.Context, recordLocator string, meta Meta) (Result, error)
	Change(ctx context.Context, input ChangeInput, meta Meta) (Result, error)
	Cancel(ctx context.Context, recordLocator string, meta Meta) (Result, error)
}

type Cache interface {
	GetBooking(ctx context.Context, locator string) (*domain.Flight, error)
	SetBooking(ctx context.Context, flight *domain.Flight) error
	InvalidateBooking(ctx context.Context, locator string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookInput struct {
	FromCity      string
	ToCity        string
	DepartureDate string
	ReturnDate    string
	FirstName     string
	LastName      string
	SeatPref      string
	ContactNumber string
}

type ChangeInput struct {
	RecordLocator    string
	NewDepartureDate string
	NewReturnDate    string
	NewFromCity      string
	NewToCity        string
}

type BookingService struct {
	repo               repository.BookingRepository
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	locatorRetries     int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithLocatorRetries bounds the regenerate-and-retry loop on record
// locator collisions. Values below 1 are treated as 1.
func WithLocatorRetries(retries int) BookingServiceOption {
	return func(s *BookingService) {
		s.locatorRetries = retries
	}
}

func NewBookingService(
	repo repository.BookingRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		repo:           repo,
		cache:          cache,
		producer:       producer,
		eventsTopic:    eventsTopic,
		locatorRetries: 3,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

const (
	msgAdvanceNotice  = "Error: Flights must be booked at least 24 hours in advance."
	msgLookupNotFound = "No flight found with that record locator."
	msgChangeNotFound = "Booking not found."
	msgChanged        = "Flight updated successfully."
	msgCanceled       = "Flight canceled successfully."
)

func invalidCodeMessage(code string) string {
	return fmt.Sprintf("Error: '%s' is not a valid IATA airport code. Please use a 3-letter code like 'JFK' or 'LAX'.", code)
}

func invalidDateMessage(value string) string {
	return fmt.Sprintf("Error: '%s' is not a valid date. Please use the YYYY-MM-DD format.", value)
}

func (s *BookingService) Book(ctx context.Context, input BookInput, _ Meta) (Result, error) {
	fullName := strings.TrimSpace(input.FirstName + " " + input.LastName)

	fromCity := strings.ToUpper(strings.TrimSpace(input.FromCity))
	toCity := strings.ToUpper(strings.TrimSpace(input.ToCity))
	if !validate.IATACode(fromCity) {
		return reject(invalidCodeMessage(fromCity)), nil
	}
	if !validate.IATACode(toCity) {
		return reject(invalidCodeMessage(toCity)), nil
	}

	departure, err := validate.ParseDate(input.DepartureDate)
	if err != nil {
		return reject(invalidDateMessage(input.DepartureDate)), nil
	}
	if !validate.MeetsAdvanceNotice(departure, time.Now()) {
		return reject(msgAdvanceNotice), nil
	}

	var returnDate *time.Time
	if input.ReturnDate != "" {
		parsed, err := validate.ParseDate(input.ReturnDate)
		if err != nil {
			return reject(invalidDateMessage(input.ReturnDate)), nil
		}
		returnDate = &parsed
	}

	seatPref := validate.NormalizeSeatPref(input.SeatPref)
	seat := generate.Seat(seatPref)
	price := generate.Price(seatPref, returnDate != nil)
	aircraft := generate.Aircraft()

	flight := &domain.Flight{
		FromCity:      fromCity,
		ToCity:        toCity,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		AircraftType:  aircraft,
	}
	passenger := &domain.Passenger{
		FullName:      fullName,
		ContactNumber: input.ContactNumber,
		SeatPref:      seatPref,
		SeatNumber:    seat,
		AirfarePrice:  generate.FormatPrice(price),
	}

	attempts := s.locatorRetries
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		flight.RecordLocator = generate.RecordLocator()
		err = s.repo.CreateBooking(ctx, flight, passenger)
		if !errors.Is(err, repository.ErrDuplicateLocator) {
			break
		}
	}
	if err != nil {
		return Result{}, err
	}

	flight.Passengers = []domain.Passenger{*passenger}
	s.publish(ctx, "booking_created", flight)

	lines := []string{
		fmt.Sprintf("Flight booked successfully! Record locator: %s", flight.RecordLocator),
		fmt.Sprintf("Route: %s → %s", fromCity, toCity),
		fmt.Sprintf("Departure: %s", departure.Format(validate.DateLayout)),
	}
	if returnDate != nil {
		lines = append(lines, fmt.Sprintf("Return: %s", returnDate.Format(validate.DateLayout)))
	}
	lines = append(lines,
		fmt.Sprintf("Aircraft: %s", aircraft),
		"\nPassenger Information:",
		fmt.Sprintf("Total price: $%s", passenger.AirfarePrice),
		fmt.Sprintf("- %s: %s seat %s", fullName, title(seatPref), seat),
	)

	return Result{OK: true, Text: strings.Join(lines, "\n"), Data: map[string]interface{}{}}, nil
}

func (s *BookingService) Lookup(ctx context.Context, recordLocator string, _ Meta) (Result, error) {
	locator := strings.ToUpper(strings.TrimSpace(recordLocator))

	var flight *domain.Flight
	if s.cache != nil {
		if cached, err := s.cache.GetBooking(ctx, locator); err == nil && cached != nil {
			flight = cached
		}
	}

	if flight == nil {
		found, err := s.repo.GetByRecordLocator(ctx, locator)
		if err != nil {
			return Result{}, err
		}
		if found == nil {
			return reject(msgLookupNotFound), nil
		}
		flight = found
		if s.cache != nil {
			if err := s.cache.SetBooking(ctx, flight); err != nil {
				log.Printf("cache booking %s: %v", locator, err)
			}
		}
	}

	returnInfo := "One-way flight"
	if flight.ReturnDate != nil {
		returnInfo = flight.ReturnDate.Format(validate.DateLayout)
	}

	lines := []string{
		fmt.Sprintf("Record locator: %s", flight.RecordLocator),
		fmt.Sprintf("Route: %s → %s", flight.FromCity, flight.ToCity),
		fmt.Sprintf("Departure: %s", flight.DepartureDate.Format(validate.DateLayout)),
		fmt.Sprintf("Return: %s", returnInfo),
		fmt.Sprintf("Aircraft: %s", flight.AircraftType),
	}

	passengers := make([]map[string]interface{}, 0, 1)
	if len(flight.Passengers) > 0 {
		p := flight.Passengers[0]
		passengers = append(passengers, map[string]interface{}{
			"name":            p.FullName,
			"contact":         p.ContactNumber,
			"seat_preference": p.SeatPref,
			"assigned_seat":   p.SeatNumber,
			"seat_type":       fmt.Sprintf("%s seat (%s)", title(p.SeatPref), p.SeatNumber),
		})
		lines = append(lines,
			fmt.Sprintf("Passenger: %s (%s)", p.FullName, p.ContactNumber),
			fmt.Sprintf("Seat: %s seat (%s)", title(p.SeatPref), p.SeatNumber),
		)
	}

	data := map[string]interface{}{
		"record_locator": flight.RecordLocator,
		"route":          fmt.Sprintf("%s → %s", flight.FromCity, flight.ToCity),
		"departure_date": flight.DepartureDate.Format(validate.DateLayout),
		"return_date":    returnInfo,
		"aircraft":       flight.AircraftType,
		"passengers":     passengers,
	}

	return Result{OK: true, Text: strings.Join(lines, "\n"), Data: data}, nil
}

func (s *BookingService) Change(ctx context.Context, input ChangeInput, _ Meta) (Result, error) {
	locator := strings.ToUpper(strings.TrimSpace(input.RecordLocator))

	flight, err := s.repo.GetByRecordLocator(ctx, locator)
	if err != nil {
		return Result{}, err
	}
	if flight == nil {
		return reject(msgChangeNotFound), nil
	}

	// Validate every provided field into a pending copy before touching
	// the stored row, so a bad field cannot leave a partial update.
	pending := *flight

	if input.NewDepartureDate != "" {
		departure, err := validate.ParseDate(input.NewDepartureDate)
		if err != nil {
			return reject(invalidDateMessage(input.NewDepartureDate)), nil
		}
		pending.DepartureDate = departure
	}
	if input.NewReturnDate != "" {
		returnDate, err := validate.ParseDate(input.NewReturnDate)
		if err != nil {
			return reject(invalidDateMessage(input.NewReturnDate)), nil
		}
		pending.ReturnDate = &returnDate
	}
	if input.NewFromCity != "" {
		fromCity := strings.ToUpper(strings.TrimSpace(input.NewFromCity))
		if !validate.IATACode(fromCity) {
			return reject(invalidCodeMessage(fromCity)), nil
		}
		pending.FromCity = fromCity
	}
	if input.NewToCity != "" {
		toCity := strings.ToUpper(strings.TrimSpace(input.NewToCity))
		if !validate.IATACode(toCity) {
			return reject(invalidCodeMessage(toCity)), nil
		}
		pending.ToCity = toCity
	}

	if err := s.repo.UpdateFlight(ctx, &pending); err != nil {
		return Result{}, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateBooking(ctx, locator); err != nil {
			log.Printf("invalidate booking %s: %v", locator, err)
		}
	}
	s.publish(ctx, "booking_changed", &pending)

	return Result{OK: true, Text: msgChanged, Data: map[string]interface{}{}}, nil
}

func (s *BookingService) Cancel(ctx context.Context, recordLocator string, _ Meta) (Result, error) {
	locator := strings.ToUpper(strings.TrimSpace(recordLocator))

	flight, err := s.repo.GetByRecordLocator(ctx, locator)
	if err != nil {
		return Result{}, err
	}
	if flight == nil {
		// Idempotent from the caller's perspective.
		return Result{OK: true, Text: msgCanceled, Data: map[string]interface{}{}}, nil
	}

	deleted, err := s.repo.DeleteByRecordLocator(ctx, locator)
	if err != nil {
		return Result{}, err
	}
	if deleted {
		if s.cache != nil {
			if err := s.cache.InvalidateBooking(ctx, locator); err != nil {
				log.Printf("invalidate booking %s: %v", locator, err)
			}
		}
		s.publish(ctx, "booking_cancelled", flight)
	}

	return Result{OK: true, Text: msgCanceled, Data: map[string]interface{}{}}, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, flight *domain.Flight) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}

	event := kafka.BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		RecordLocator: flight.RecordLocator,
		FromCity:      flight.FromCity,
		ToCity:        flight.ToCity,
		DepartureDate: flight.DepartureDate.Format(validate.DateLayout),
		AircraftType:  flight.AircraftType,
		OccurredAt:    time.Now(),
	}
	if flight.ReturnDate != nil {
		event.ReturnDate = flight.ReturnDate.Format(validate.DateLayout)
	}
	if len(flight.Passengers) > 0 {
		p := flight.Passengers[0]
		event.PassengerName = p.FullName
		event.ContactNumber = p.ContactNumber
		event.SeatNumber = p.SeatNumber
		event.AirfarePrice = p.AirfarePrice
	}

	if err := s.producer.Publish(ctx, s.eventsTopic, flight.RecordLocator, event); err != nil {
		log.Printf("publish %s event for %s: %v", eventType, flight.RecordLocator, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, flight.RecordLocator, event); err != nil {
			log.Printf("publish %s notification for %s: %v", eventType, flight.RecordLocator, err)
		}
	}
}

func reject(text string) Result {
	return Result{Text: text, Data: map[string]interface{}{}}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ BookingUseCase = (*BookingService)(nil)
