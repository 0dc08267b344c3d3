// internal/fixtures/sample.go
package fixtures

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// DefaultSeed produces the dataset shipped with the dashboard demo.
const DefaultSeed = 20251001

const samplePricePerHour = 35

var sampleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://prepark.dev/sample-bookings"))

// SampleParkings are the six Mumbai locations of the demo provider.
func SampleParkings() []models.Parking {
	return []models.Parking{
		{ID: "park-001", Name: "Dadar Station Parking", Location: "Dadar East, Mumbai", Capacity: 150, PricePerHour: samplePricePerHour},
		{ID: "park-002", Name: "CST Metro Parking", Location: "Chhatrapati Shivaji Terminus, Mumbai", Capacity: 200, PricePerHour: samplePricePerHour},
		{ID: "park-003", Name: "Bandra West Parking", Location: "Bandra West, Mumbai", Capacity: 120, PricePerHour: samplePricePerHour},
		{ID: "park-004", Name: "Andheri East Hub", Location: "Andheri East, Mumbai", Capacity: 180, PricePerHour: samplePricePerHour},
		{ID: "park-005", Name: "Lower Parel Complex", Location: "Lower Parel, Mumbai", Capacity: 250, PricePerHour: samplePricePerHour},
		{ID: "park-006", Name: "Powai IT Park", Location: "Powai, Mumbai", Capacity: 300, PricePerHour: samplePricePerHour},
	}
}

var sampleUserNames = []string{
	"Rahul Sharma", "Priya Patel", "Amit Kumar", "Neha Gupta", "Vikram Singh",
	"Anjali Desai", "Sanjay Mehta", "Kavita Reddy", "Rajesh Verma", "Pooja Joshi",
	"Manoj Nair", "Divya Iyer", "Arjun Kapoor", "Sneha Malhotra", "Karan Shah",
	"Simran Kaur", "Varun Khanna", "Ritu Agarwal", "Deepak Jain", "Meera Rao",
	"Rohit Jain", "Ananya Singh", "Vivek Agarwal", "Priyanka Khanna", "Aryan Mehta",
}

// sampleMonth describes one month of the growth curve.
type sampleMonth struct {
	year        int
	month       time.Month
	bookings    int
	lastDay     int
	firstHour   int
	hourSpan    int
	preBooked   float64
	cancelRate  float64
	twoWheeler  float64
	minDuration int
	durSpan     int

	// bookings past these positions are still open
	confirmedAfter int
	activeAfter    int
}

var sampleCurve = []sampleMonth{
	{year: 2025, month: time.October, bookings: 35, lastDay: 31, firstHour: 8, hourSpan: 12, preBooked: 0.65, cancelRate: 0.12, twoWheeler: 0.60, minDuration: 2, durSpan: 4},
	{year: 2025, month: time.November, bookings: 52, lastDay: 30, firstHour: 7, hourSpan: 13, preBooked: 0.68, cancelRate: 0.10, twoWheeler: 0.62, minDuration: 2, durSpan: 5},
	{year: 2025, month: time.December, bookings: 78, lastDay: 31, firstHour: 7, hourSpan: 14, preBooked: 0.72, cancelRate: 0.08, twoWheeler: 0.65, minDuration: 2, durSpan: 6},
	{year: 2026, month: time.January, bookings: 95, lastDay: 31, firstHour: 7, hourSpan: 13, preBooked: 0.75, cancelRate: 0.09, twoWheeler: 0.63, minDuration: 2, durSpan: 5},
	{year: 2026, month: time.February, bookings: 25, lastDay: 6, firstHour: 8, hourSpan: 11, preBooked: 0.77, cancelRate: 0.07, twoWheeler: 0.64, minDuration: 2, durSpan: 5, confirmedAfter: 20, activeAfter: 22},
}

// SampleBookings generates the demo booking history for parkings, October 2025
// through early February 2026. The same seed always yields the same bookings.
func SampleBookings(seed uint64, parkings []models.Parking) []models.Booking {
	if len(parkings) == 0 {
		return []models.Booking{}
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|1))

	total := 0
	for _, m := range sampleCurve {
		total += m.bookings
	}
	bookings := make([]models.Booking, 0, total)

	counter := 1
	for _, m := range sampleCurve {
		for i := 1; i <= m.bookings; i++ {
			// spread the month's bookings evenly across its days
			day := min((i*m.lastDay+m.bookings-1)/m.bookings, m.lastDay)
			hour := m.firstHour + rng.IntN(m.hourSpan)
			start := time.Date(m.year, m.month, day, hour, 0, 0, 0, time.Local)

			parking := parkings[rng.IntN(len(parkings))]
			userName := sampleUserNames[rng.IntN(len(sampleUserNames))]

			bookingType := models.BookingTypeOnSite
			if rng.Float64() < m.preBooked {
				bookingType = models.BookingTypePreBooked
			}

			var status models.BookingStatus
			switch {
			case m.activeAfter > 0 && i > m.activeAfter:
				status = models.BookingStatusActive
			case m.confirmedAfter > 0 && i > m.confirmedAfter:
				status = models.BookingStatusConfirmed
			case rng.Float64() < m.cancelRate:
				status = models.BookingStatusCancelled
			default:
				status = models.BookingStatusCompleted
			}

			vehicle := models.VehicleFourWheeler
			if rng.Float64() < m.twoWheeler {
				vehicle = models.VehicleTwoWheeler
			}
			duration := m.minDuration + rng.IntN(m.durSpan)

			code := fmt.Sprintf("BK-%03d", counter)
			id := uuid.NewSHA1(sampleNamespace, []byte(code)).String()
			bookings = append(bookings, models.NewBooking(id, parking, userName, vehiclePlate(rng), vehicle, bookingType, status, start, duration))
			counter++
		}
	}
	return bookings
}

// NewSample returns a Static source over the demo dataset.
func NewSample(seed uint64) *Static {
	parkings := SampleParkings()
	return NewStatic(parkings, SampleBookings(seed, parkings))
}

// vehiclePlate builds a Maharashtra registration such as MH04AB1234.
func vehiclePlate(rng *rand.Rand) string {
	return fmt.Sprintf("MH%02d%c%c%04d",
		rng.IntN(50),
		'A'+rune(rng.IntN(26)),
		'A'+rune(rng.IntN(26)),
		1000+rng.IntN(9000),
	)
}
