package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock(now time.Time) *mockClock {
	return &mockClock{now: now}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func newTestBooking(id, parkingID string, bookingType models.BookingType, status models.BookingStatus, start time.Time, amount float64) models.Booking {
	return models.Booking{
		ID:          id,
		ParkingID:   parkingID,
		UserName:    "Test User",
		BookingType: bookingType,
		Status:      status,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		Amount:      models.Amount(amount),
		Duration:    2,
		CreatedAt:   start,
	}
}

func testParkings() []models.Parking {
	return []models.Parking{
		{ID: "park-001", Name: "Dadar Station Parking", Location: "Dadar East, Mumbai", Capacity: 150, PricePerHour: 35},
		{ID: "park-002", Name: "CST Metro Parking", Location: "Chhatrapati Shivaji Terminus, Mumbai", Capacity: 200, PricePerHour: 35},
		{ID: "park-003", Name: "Bandra West Parking", Location: "Bandra West, Mumbai", Capacity: 120, PricePerHour: 35},
	}
}

// testBookings spans two months and three parkings, with one cancellation per
// month and one booking whose start time failed to parse.
func testBookings() []models.Booking {
	return []models.Booking{
		newTestBooking("b1", "park-001", models.BookingTypePreBooked, models.BookingStatusCompleted, at(2025, time.October, 5, 9), 70),
		newTestBooking("b2", "park-001", models.BookingTypeOnSite, models.BookingStatusCompleted, at(2025, time.October, 5, 9), 105),
		newTestBooking("b3", "park-001", models.BookingTypePreBooked, models.BookingStatusCancelled, at(2025, time.October, 20, 18), 140),
		newTestBooking("b4", "park-002", models.BookingTypeOnSite, models.BookingStatusActive, at(2025, time.November, 1, 18), 35),
		newTestBooking("b5", "park-002", models.BookingTypePreBooked, models.BookingStatusConfirmed, at(2025, time.November, 2, 11), 70),
		newTestBooking("b6", "park-002", models.BookingTypePreBooked, models.BookingStatusCancelled, at(2025, time.November, 3, 11), 70),
		newTestBooking("b7", "park-001", models.BookingTypeOnSite, models.BookingStatusCompleted, time.Time{}, 35),
	}
}

type stubBookingSource struct {
	bookings []models.Booking
	err      error
}

func (s stubBookingSource) ListBookings(context.Context) ([]models.Booking, error) {
	return s.bookings, s.err
}

type stubParkingSource struct {
	parkings []models.Parking
	err      error
}

func (s stubParkingSource) ListParkings(context.Context) ([]models.Parking, error) {
	return s.parkings, s.err
}
