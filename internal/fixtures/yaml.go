// internal/fixtures/yaml.go
package fixtures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const timestampLayout = "2006-01-02T15:04:05"

type parkingRecord struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Location     string  `yaml:"location"`
	Capacity     int     `yaml:"capacity"`
	PricePerHour float64 `yaml:"price_per_hour"`
}

// bookingRecord keeps enums and timestamps as text so a bad value degrades a
// single field instead of failing the whole file.
type bookingRecord struct {
	ID            string        `yaml:"id"`
	ParkingID     string        `yaml:"parking_id"`
	UserName      string        `yaml:"user_name"`
	VehicleNumber string        `yaml:"vehicle_number,omitempty"`
	VehicleType   string        `yaml:"vehicle_type,omitempty"`
	BookingType   string        `yaml:"booking_type"`
	Status        string        `yaml:"status"`
	StartTime     string        `yaml:"start_time"`
	EndTime       string        `yaml:"end_time,omitempty"`
	Amount        models.Amount `yaml:"amount"`
	Duration      int           `yaml:"duration"`
	CreatedAt     string        `yaml:"created_at,omitempty"`
	CancelledAt   string        `yaml:"cancelled_at,omitempty"`
}

type dataset struct {
	Parkings []parkingRecord `yaml:"parkings"`
	Bookings []bookingRecord `yaml:"bookings"`
}

// LoadFile reads a YAML dataset into a Static source. Unparsable timestamps
// become zero times and unknown enum values are kept as lower-case text; both
// are logged.
func LoadFile(ctx context.Context, path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixtures file: %w", err)
	}
	parkings, bookings, err := Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("error parsing fixtures file %s: %w", path, err)
	}

	log.Ctx(ctx).Info().
		Str("component", "fixtures").
		Str("path", path).
		Int("parkings", len(parkings)).
		Int("bookings", len(bookings)).
		Msg("Loaded fixtures")
	return NewStatic(parkings, bookings), nil
}

// Decode parses a YAML dataset.
func Decode(ctx context.Context, data []byte) ([]models.Parking, []models.Booking, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, nil, err
	}

	parkings := make([]models.Parking, 0, len(ds.Parkings))
	for _, p := range ds.Parkings {
		parkings = append(parkings, models.Parking{
			ID:           p.ID,
			Name:         p.Name,
			Location:     p.Location,
			Capacity:     p.Capacity,
			PricePerHour: p.PricePerHour,
		})
	}

	bookings := make([]models.Booking, 0, len(ds.Bookings))
	for _, r := range ds.Bookings {
		bookings = append(bookings, r.toBooking(ctx))
	}
	return parkings, bookings, nil
}

func (r bookingRecord) toBooking(ctx context.Context) models.Booking {
	booking, problems := models.RawBooking(r).Normalize()
	if len(problems) == 0 {
		return booking
	}

	logger := log.Ctx(ctx).With().
		Str("component", "fixtures").
		Str("booking_id", r.ID).
		Logger()
	for _, field := range problems {
		switch field {
		case models.FieldBookingType:
			logger.Warn().Str("booking_type", r.BookingType).Msg("Unknown booking type")
		case models.FieldStatus:
			logger.Warn().Str("status", r.Status).Msg("Unknown booking status")
		case models.FieldStartTime:
			logger.Warn().Str("start_time", r.StartTime).Msg("Unparsable start time")
		}
	}
	return booking
}

// WriteFile stores parkings and bookings as a YAML dataset LoadFile can read.
func WriteFile(path string, parkings []models.Parking, bookings []models.Booking) error {
	ds := dataset{
		Parkings: make([]parkingRecord, 0, len(parkings)),
		Bookings: make([]bookingRecord, 0, len(bookings)),
	}
	for _, p := range parkings {
		ds.Parkings = append(ds.Parkings, parkingRecord(p))
	}
	for _, b := range bookings {
		ds.Bookings = append(ds.Bookings, recordFromBooking(b))
	}

	data, err := yaml.Marshal(&ds)
	if err != nil {
		return fmt.Errorf("error encoding fixtures: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating fixtures directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing fixtures file: %w", err)
	}
	return nil
}

func recordFromBooking(b models.Booking) bookingRecord {
	r := bookingRecord{
		ID:            b.ID,
		ParkingID:     b.ParkingID,
		UserName:      b.UserName,
		VehicleNumber: b.VehicleNumber,
		VehicleType:   string(b.VehicleType),
		BookingType:   string(b.BookingType),
		Status:        string(b.Status),
		StartTime:     formatTimestamp(b.StartTime),
		EndTime:       formatTimestamp(b.EndTime),
		Amount:        b.Amount,
		Duration:      b.Duration,
		CreatedAt:     formatTimestamp(b.CreatedAt),
	}
	if b.CancelledAt != nil {
		r.CancelledAt = formatTimestamp(*b.CancelledAt)
	}
	return r
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timestampLayout)
}
