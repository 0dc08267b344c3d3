// internal/db/postgres.go
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

//go:embed postgres/schema.sql
var postgresSchema string

const postgresQueryTimeout = 10 * time.Second

// PostgresStore reads bookings and parkings from a shared Postgres database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL and creates the tables when missing.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing database url: %w", err)
	}
	cfg.MinConns = 1
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ListParkings(ctx context.Context) ([]models.Parking, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresQueryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `SELECT id, name, location, capacity, price_per_hour FROM parkings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query parkings: %w", err)
	}
	parkings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Parking, error) {
		var p models.Parking
		err := row.Scan(&p.ID, &p.Name, &p.Location, &p.Capacity, &p.PricePerHour)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan parkings: %w", err)
	}
	return parkings, nil
}

func (s *PostgresStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresQueryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT id, parking_id, user_name, vehicle_number, vehicle_type, booking_type, status,
		       start_time, end_time, amount::text, duration, created_at, cancelled_at
		FROM bookings
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	logger := log.Ctx(ctx).With().Str("component", "booking_store").Logger()
	bookings := []models.Booking{}
	for rows.Next() {
		var (
			raw                                      models.RawBooking
			startTime, endTime, createdAt, cancelled *time.Time
		)
		if err := rows.Scan(
			&raw.ID,
			&raw.ParkingID,
			&raw.UserName,
			&raw.VehicleNumber,
			&raw.VehicleType,
			&raw.BookingType,
			&raw.Status,
			&startTime,
			&endTime,
			&raw.Amount,
			&raw.Duration,
			&createdAt,
			&cancelled,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		raw.StartTime = formatTimestamp(derefTime(startTime)).String
		raw.EndTime = formatTimestamp(derefTime(endTime)).String
		raw.CreatedAt = formatTimestamp(derefTime(createdAt)).String
		raw.CancelledAt = formatTimestamp(derefTime(cancelled)).String

		booking, problems := raw.Normalize()
		if len(problems) > 0 {
			logBookingProblems(&logger, raw, problems)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	return bookings, nil
}

// ReplaceAll swaps the stored dataset in one transaction using a batch.
func (s *PostgresStore) ReplaceAll(ctx context.Context, parkings []models.Parking, bookings []models.Booking) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`DELETE FROM bookings`)
		batch.Queue(`DELETE FROM parkings`)
		for _, p := range parkings {
			batch.Queue(`INSERT INTO parkings (id, name, location, capacity, price_per_hour) VALUES ($1, $2, $3, $4, $5)`,
				p.ID, p.Name, p.Location, p.Capacity, p.PricePerHour)
		}
		for _, b := range bookings {
			batch.Queue(`
				INSERT INTO bookings (
					id, parking_id, user_name, vehicle_number, vehicle_type, booking_type, status,
					start_time, end_time, amount, duration, created_at, cancelled_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				b.ID, b.ParkingID, b.UserName, b.VehicleNumber, string(b.VehicleType),
				string(b.BookingType), string(b.Status),
				nullableTime(b.StartTime), nullableTime(b.EndTime), b.Amount.Float64(), b.Duration,
				nullableTime(b.CreatedAt), b.CancelledAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("replace dataset: %w", err)
		}
		return nil
	})
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
