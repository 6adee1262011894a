package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voxair/flightdesk/internal/domain"
)

// ErrDuplicateLocator is returned when an insert collides with an existing
// record locator. Callers are expected to regenerate and retry.
var ErrDuplicateLocator = errors.New("record locator already exists")

type BookingRepository interface {
	// CreateBooking persists a flight and its passenger in one transaction.
	// Neither row exists if the transaction fails.
	CreateBooking(ctx context.Context, flight *domain.Flight, passenger *domain.Passenger) error
	// GetByRecordLocator loads a flight with its passengers, or (nil, nil)
	// when no flight matches.
	GetByRecordLocator(ctx context.Context, locator string) (*domain.Flight, error)
	// UpdateFlight rewrites the mutable flight fields in a single statement.
	UpdateFlight(ctx context.Context, flight *domain.Flight) error
	// DeleteByRecordLocator removes a flight and, via cascade, its
	// passengers. It reports whether a flight existed.
	DeleteByRecordLocator(ctx context.Context, locator string) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// EnsureSchema creates the flights and passengers tables when they do not
// exist yet. Passengers cascade on flight deletion.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS flights (
			id BIGSERIAL PRIMARY KEY,
			record_locator VARCHAR(6) NOT NULL UNIQUE,
			from_city VARCHAR(3) NOT NULL,
			to_city VARCHAR(3) NOT NULL,
			departure_date DATE NOT NULL,
			return_date DATE,
			aircraft_type VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS passengers (
			id BIGSERIAL PRIMARY KEY,
			flight_id BIGINT NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
			full_name VARCHAR(100) NOT NULL,
			contact_number VARCHAR(20) NOT NULL,
			seat_pref VARCHAR(20) NOT NULL,
			seat_number VARCHAR(3) NOT NULL,
			airfare_price VARCHAR(10) NOT NULL
		);
	`)
	return err
}

func (r *PGBookingRepository) CreateBooking(ctx context.Context, flight *domain.Flight, passenger *domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (record_locator, from_city, to_city, departure_date, return_date, aircraft_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		flight.RecordLocator, flight.FromCity, flight.ToCity, flight.DepartureDate, flight.ReturnDate, flight.AircraftType).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLocator
		}
		return err
	}

	passenger.FlightID = flight.ID
	if err := tx.QueryRow(ctx, `INSERT INTO passengers (flight_id, full_name, contact_number, seat_pref, seat_number, airfare_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		passenger.FlightID, passenger.FullName, passenger.ContactNumber, passenger.SeatPref, passenger.SeatNumber, passenger.AirfarePrice).
		Scan(&passenger.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByRecordLocator(ctx context.Context, locator string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, record_locator, from_city, to_city, departure_date, return_date, aircraft_type, created_at, updated_at
		FROM flights WHERE record_locator=$1`, locator)

	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RecordLocator, &f.FromCity, &f.ToCity, &f.DepartureDate, &f.ReturnDate, &f.AircraftType, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, flight_id, full_name, contact_number, seat_pref, seat_number, airfare_price
		FROM passengers WHERE flight_id=$1 ORDER BY id`, f.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.FlightID, &p.FullName, &p.ContactNumber, &p.SeatPref, &p.SeatNumber, &p.AirfarePrice); err != nil {
			return nil, err
		}
		f.Passengers = append(f.Passengers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGBookingRepository) UpdateFlight(ctx context.Context, flight *domain.Flight) error {
	_, err := r.db.Exec(ctx, `UPDATE flights SET from_city=$1, to_city=$2, departure_date=$3, return_date=$4, updated_at=now()
		WHERE id=$5`,
		flight.FromCity, flight.ToCity, flight.DepartureDate, flight.ReturnDate, flight.ID)
	return err
}

func (r *PGBookingRepository) DeleteByRecordLocator(ctx context.Context, locator string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE record_locator=$1`, locator)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ BookingRepository = (*PGBookingRepository)(nil)
