// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const listParkings = `SELECT id, name, location, capacity, price_per_hour FROM parkings ORDER BY id`

func (q *Queries) ListParkings(ctx context.Context) ([]models.Parking, error) {
	rows, err := q.db.QueryContext(ctx, listParkings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parkings := []models.Parking{}
	for rows.Next() {
		var p models.Parking
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Capacity, &p.PricePerHour); err != nil {
			return nil, err
		}
		parkings = append(parkings, p)
	}
	return parkings, rows.Err()
}

const listBookingRows = `SELECT id, parking_id, user_name, vehicle_number, vehicle_type, booking_type, status,
       start_time, end_time, amount, duration, created_at, cancelled_at
FROM bookings
ORDER BY id`

// BookingRow is a bookings row as stored, before enum and timestamp parsing.
type BookingRow struct {
	ID            string
	ParkingID     string
	UserName      string
	VehicleNumber string
	VehicleType   string
	BookingType   string
	Status        string
	StartTime     sql.NullString
	EndTime       sql.NullString
	Amount        models.Amount
	Duration      int
	CreatedAt     sql.NullString
	CancelledAt   sql.NullString
}

func (q *Queries) ListBookingRows(ctx context.Context) ([]BookingRow, error) {
	rows, err := q.db.QueryContext(ctx, listBookingRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BookingRow{}
	for rows.Next() {
		var r BookingRow
		if err := rows.Scan(
			&r.ID,
			&r.ParkingID,
			&r.UserName,
			&r.VehicleNumber,
			&r.VehicleType,
			&r.BookingType,
			&r.Status,
			&r.StartTime,
			&r.EndTime,
			&r.Amount,
			&r.Duration,
			&r.CreatedAt,
			&r.CancelledAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const upsertParking = `INSERT INTO parkings (id, name, location, capacity, price_per_hour)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    location = excluded.location,
    capacity = excluded.capacity,
    price_per_hour = excluded.price_per_hour`

func (q *Queries) UpsertParking(ctx context.Context, p models.Parking) error {
	_, err := q.db.ExecContext(ctx, upsertParking, p.ID, p.Name, p.Location, p.Capacity, p.PricePerHour)
	return err
}

const upsertBooking = `INSERT INTO bookings (
    id, parking_id, user_name, vehicle_number, vehicle_type, booking_type, status,
    start_time, end_time, amount, duration, created_at, cancelled_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    parking_id = excluded.parking_id,
    user_name = excluded.user_name,
    vehicle_number = excluded.vehicle_number,
    vehicle_type = excluded.vehicle_type,
    booking_type = excluded.booking_type,
    status = excluded.status,
    start_time = excluded.start_time,
    end_time = excluded.end_time,
    amount = excluded.amount,
    duration = excluded.duration,
    created_at = excluded.created_at,
    cancelled_at = excluded.cancelled_at`

func (q *Queries) UpsertBooking(ctx context.Context, b models.Booking) error {
	var cancelledAt sql.NullString
	if b.CancelledAt != nil {
		cancelledAt = formatTimestamp(*b.CancelledAt)
	}
	_, err := q.db.ExecContext(ctx, upsertBooking,
		b.ID,
		b.ParkingID,
		b.UserName,
		b.VehicleNumber,
		string(b.VehicleType),
		string(b.BookingType),
		string(b.Status),
		formatTimestamp(b.StartTime),
		formatTimestamp(b.EndTime),
		b.Amount.Float64(),
		b.Duration,
		formatTimestamp(b.CreatedAt),
		cancelledAt,
	)
	return err
}

const countBookings = `SELECT COUNT(*) FROM bookings`

func (q *Queries) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBookings).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAll(ctx context.Context) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("delete bookings: %w", err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM parkings`); err != nil {
		return fmt.Errorf("delete parkings: %w", err)
	}
	return nil
}

// formatTimestamp stores times as RFC 3339 text; zero times are stored as NULL.
func formatTimestamp(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}
