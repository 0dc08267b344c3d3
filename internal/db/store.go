// internal/db/store.go
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

func (db *DB) ListParkings(ctx context.Context) ([]models.Parking, error) {
	parkings, err := db.Queries.ListParkings(ctx)
	if err != nil {
		return nil, fmt.Errorf("query parkings: %w", err)
	}
	return parkings, nil
}

// ListBookings loads every booking. Rows with unknown enum values or an
// unparsable start time are returned with fallback values and logged.
func (db *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := db.Queries.ListBookingRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}

	logger := log.Ctx(ctx).With().Str("component", "booking_store").Logger()
	bookings := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		raw := row.Raw()
		booking, problems := raw.Normalize()
		if len(problems) > 0 {
			logBookingProblems(&logger, raw, problems)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// Raw converts a stored row into its textual form.
func (r BookingRow) Raw() models.RawBooking {
	return models.RawBooking{
		ID:            r.ID,
		ParkingID:     r.ParkingID,
		UserName:      r.UserName,
		VehicleNumber: r.VehicleNumber,
		VehicleType:   r.VehicleType,
		BookingType:   r.BookingType,
		Status:        r.Status,
		StartTime:     r.StartTime.String,
		EndTime:       r.EndTime.String,
		Amount:        r.Amount,
		Duration:      r.Duration,
		CreatedAt:     r.CreatedAt.String,
		CancelledAt:   r.CancelledAt.String,
	}
}

func logBookingProblems(logger *zerolog.Logger, raw models.RawBooking, problems []string) {
	event := logger.Warn().
		Str("booking_id", raw.ID).
		Strs("fields", problems)
	for _, field := range problems {
		switch field {
		case models.FieldBookingType:
			event = event.Str("booking_type", raw.BookingType)
		case models.FieldStatus:
			event = event.Str("status", raw.Status)
		case models.FieldStartTime:
			event = event.Str("start_time", raw.StartTime)
		}
	}
	event.Msg("Booking row normalized with fallbacks")
}

func (db *DB) InsertParking(ctx context.Context, parking models.Parking) error {
	if err := db.Queries.UpsertParking(ctx, parking); err != nil {
		return fmt.Errorf("insert parking %s: %w", parking.ID, err)
	}
	return nil
}

func (db *DB) InsertBooking(ctx context.Context, booking models.Booking) error {
	if err := db.Queries.UpsertBooking(ctx, booking); err != nil {
		return fmt.Errorf("insert booking %s: %w", booking.ID, err)
	}
	return nil
}

// ReplaceAll swaps the stored dataset for parkings and bookings in one
// transaction.
func (db *DB) ReplaceAll(ctx context.Context, parkings []models.Parking, bookings []models.Booking) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		if err := tx.Queries.DeleteAll(ctx); err != nil {
			return err
		}
		for _, parking := range parkings {
			if err := tx.InsertParking(ctx, parking); err != nil {
				return err
			}
		}
		for _, booking := range bookings {
			if err := tx.InsertBooking(ctx, booking); err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedIfEmpty stores the given dataset when the bookings table is empty and
// reports whether it did.
func (db *DB) SeedIfEmpty(ctx context.Context, parkings []models.Parking, bookings []models.Booking) (bool, error) {
	count, err := db.Queries.CountBookings(ctx)
	if err != nil {
		return false, fmt.Errorf("count bookings: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := db.ReplaceAll(ctx, parkings, bookings); err != nil {
		return false, err
	}
	log.Ctx(ctx).Info().
		Str("component", "booking_store").
		Int("parkings", len(parkings)).
		Int("bookings", len(bookings)).
		Msg("Seeded empty database")
	return true, nil
}
