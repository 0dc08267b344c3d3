package fixtures

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

func TestSampleBookingsDeterministic(t *testing.T) {
	parkings := SampleParkings()
	first := SampleBookings(DefaultSeed, parkings)
	second := SampleBookings(DefaultSeed, parkings)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("SampleBookings() differs between runs with the same seed")
	}
	if len(first) != 285 {
		t.Fatalf("SampleBookings() len = %d, want 285", len(first))
	}
	if other := SampleBookings(DefaultSeed+1, parkings); reflect.DeepEqual(first, other) {
		t.Fatalf("SampleBookings() ignores the seed")
	}
}

func TestSampleBookingsShape(t *testing.T) {
	parkings := SampleParkings()
	known := make(map[string]bool, len(parkings))
	for _, p := range parkings {
		known[p.ID] = true
	}

	earliest := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.Local)
	latest := time.Date(2026, time.February, 7, 0, 0, 0, 0, time.Local)
	ids := make(map[string]bool)
	perMonth := make(map[string]int)

	for _, b := range SampleBookings(DefaultSeed, parkings) {
		if ids[b.ID] {
			t.Fatalf("duplicate booking id %s", b.ID)
		}
		ids[b.ID] = true

		if !known[b.ParkingID] {
			t.Fatalf("booking %s references unknown parking %s", b.ID, b.ParkingID)
		}
		if b.StartTime.Before(earliest) || !b.StartTime.Before(latest) {
			t.Fatalf("booking %s starts at %v, outside the sample window", b.ID, b.StartTime)
		}
		if b.Amount.Float64() != float64(samplePricePerHour*b.Duration) {
			t.Fatalf("booking %s amount = %v, want %d", b.ID, b.Amount, samplePricePerHour*b.Duration)
		}
		if b.Duration < 2 || b.Duration > 7 {
			t.Fatalf("booking %s duration = %d, want 2..7", b.ID, b.Duration)
		}

		wantCreated := b.StartTime
		if b.BookingType == models.BookingTypePreBooked {
			wantCreated = b.StartTime.Add(-models.PreBookedLeadTime)
		}
		if !b.CreatedAt.Equal(wantCreated) {
			t.Fatalf("booking %s CreatedAt = %v, want %v", b.ID, b.CreatedAt, wantCreated)
		}
		if b.IsCancelled() != (b.CancelledAt != nil) {
			t.Fatalf("booking %s cancelled = %v but CancelledAt = %v", b.ID, b.IsCancelled(), b.CancelledAt)
		}
		perMonth[b.StartTime.Format("2006-01")]++
	}

	want := map[string]int{"2025-10": 35, "2025-11": 52, "2025-12": 78, "2026-01": 95, "2026-02": 25}
	if !reflect.DeepEqual(perMonth, want) {
		t.Fatalf("bookings per month = %v, want %v", perMonth, want)
	}
}

func TestSampleBookingsOpenStatuses(t *testing.T) {
	bookings := SampleBookings(DefaultSeed, SampleParkings())
	february := bookings[len(bookings)-25:]

	for i, b := range february {
		position := i + 1
		switch {
		case position > 22:
			if b.Status != models.BookingStatusActive {
				t.Fatalf("february booking %d status = %q, want active", position, b.Status)
			}
		case position > 20:
			if b.Status != models.BookingStatusConfirmed {
				t.Fatalf("february booking %d status = %q, want confirmed", position, b.Status)
			}
		}
	}
}

func TestStaticReturnsCopies(t *testing.T) {
	ctx := context.Background()
	source := NewStatic(SampleParkings(), []models.Booking{{ID: "a"}})

	bookings, err := source.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings() error = %v", err)
	}
	bookings[0].ID = "mutated"

	again, _ := source.ListBookings(ctx)
	if again[0].ID != "a" {
		t.Fatalf("ListBookings() exposed internal state")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := source.ListParkings(cancelled); err == nil {
		t.Fatalf("ListParkings() error = nil on cancelled context")
	}
}

func TestDecodeNormalizesRecords(t *testing.T) {
	data := []byte(`
parkings:
  - id: park-001
    name: Dadar Station Parking
    location: Dadar East, Mumbai
    capacity: 150
    price_per_hour: 35
bookings:
  - id: BK-001
    parking_id: park-001
    user_name: Rahul Sharma
    booking_type: PRE_BOOKED
    status: COMPLETED
    start_time: "2025-10-05T09:00:00"
    amount: "₹1,234.50"
    duration: 2
  - id: BK-002
    parking_id: park-001
    user_name: Priya Patel
    booking_type: ON_SITE
    status: CANCELLED
    start_time: not a date
    amount: -35
    cancelled_at: "2025-10-05T08:00:00"
  - id: BK-003
    parking_id: park-001
    booking_type: valet
    status: lost
    start_time: "2025-10-06T10:00:00Z"
    amount: ~
`)

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	parkings, bookings, err := Decode(ctx, data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(parkings) != 1 || parkings[0].Capacity != 150 || parkings[0].PricePerHour != 35 {
		t.Fatalf("parkings = %+v", parkings)
	}
	if len(bookings) != 3 {
		t.Fatalf("bookings len = %d, want 3", len(bookings))
	}

	first := bookings[0]
	if first.BookingType != models.BookingTypePreBooked || first.Status != models.BookingStatusCompleted {
		t.Fatalf("first booking enums = (%q, %q)", first.BookingType, first.Status)
	}
	if first.Amount != 1234.5 {
		t.Fatalf("first booking amount = %v, want 1234.5", first.Amount)
	}
	if want := time.Date(2025, time.October, 5, 9, 0, 0, 0, time.Local); !first.StartTime.Equal(want) {
		t.Fatalf("first booking StartTime = %v, want %v", first.StartTime, want)
	}

	second := bookings[1]
	if second.HasStartTime() {
		t.Fatalf("second booking StartTime = %v, want zero", second.StartTime)
	}
	if second.Amount != -35 || second.CancelledAt == nil {
		t.Fatalf("second booking = %+v", second)
	}

	third := bookings[2]
	if third.Amount != 0 || third.Status != models.BookingStatus("lost") {
		t.Fatalf("third booking = %+v", third)
	}

	logs := buf.String()
	for _, want := range []string{"Unparsable start time", "Unknown booking type", "Unknown booking status"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("logs missing %q: %s", want, logs)
		}
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "bookings.yaml")
	parkings := SampleParkings()
	bookings := SampleBookings(DefaultSeed, parkings)[:20]

	if err := WriteFile(path, parkings, bookings); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	source, err := LoadFile(ctx, path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	gotParkings, _ := source.ListParkings(ctx)
	if !reflect.DeepEqual(gotParkings, parkings) {
		t.Fatalf("parkings differ after round trip")
	}
	gotBookings, _ := source.ListBookings(ctx)
	if len(gotBookings) != len(bookings) {
		t.Fatalf("bookings len = %d, want %d", len(gotBookings), len(bookings))
	}
	for i := range bookings {
		want, got := bookings[i], gotBookings[i]
		if got.ID != want.ID || got.Status != want.Status || got.Amount != want.Amount || !got.StartTime.Equal(want.StartTime) || !got.CreatedAt.Equal(want.CreatedAt) {
			t.Fatalf("booking %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadFile() error = nil for a missing file")
	}
}
