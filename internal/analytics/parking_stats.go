// internal/analytics/parking_stats.go
package analytics

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const (
	UnknownParkingName = "Unknown"
	DefaultTopParkings = 5
	hoursPerDay        = 24
)

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type ParkingStats struct {
	ParkingID        string      `json:"parkingId"`
	ParkingName      string      `json:"parkingName"`
	Location         string      `json:"location,omitempty"`
	Capacity         int         `json:"capacity"`
	TotalBookings    int         `json:"totalBookings"`
	Earnings         float64     `json:"earnings"`
	EarningsLabel    string      `json:"earningsLabel"`
	Cancellations    int         `json:"cancellations"`
	CancellationRate float64     `json:"cancellationRate"`
	Utilization      float64     `json:"utilization"`
	PeakHours        []HourCount `json:"peakHours"`
	OnAppBookings    int         `json:"onAppBookings"`
	OnSiteBookings   int         `json:"onSiteBookings"`
}

// BookingsByParking returns the bookings that reference parkingID.
func BookingsByParking(bookings []models.Booking, parkingID string) []models.Booking {
	out := make([]models.Booking, 0)
	for _, booking := range bookings {
		if booking.ParkingID == parkingID {
			out = append(out, booking)
		}
	}
	return out
}

// ParkingStatsFor computes statistics for one parking over bookings. A parking
// id missing from parkings still gets a record, named UnknownParkingName.
func ParkingStatsFor(ctx context.Context, bookings []models.Booking, parkings []models.Parking, parkingID string) ParkingStats {
	parking := models.Parking{ID: parkingID, Name: UnknownParkingName}
	for _, p := range parkings {
		if p.ID == parkingID {
			parking = p
			break
		}
	}
	return computeParkingStats(ctx, parking, BookingsByParking(bookings, parkingID))
}

// AllParkingStats returns one record per parking, in parkings order, over the
// bookings inside rng. Parkings without bookings get zeroed records.
func AllParkingStats(ctx context.Context, bookings []models.Booking, parkings []models.Parking, rng *DateRange) []ParkingStats {
	filtered := FilterByRange(bookings, rng)

	byParking := make(map[string][]models.Booking, len(parkings))
	for _, booking := range filtered {
		byParking[booking.ParkingID] = append(byParking[booking.ParkingID], booking)
	}

	stats := make([]ParkingStats, 0, len(parkings))
	for _, parking := range parkings {
		stats = append(stats, computeParkingStats(ctx, parking, byParking[parking.ID]))
	}
	return stats
}

// TopParkingsByEarnings ranks stats by earnings, highest first, and keeps the
// first limit entries. A non-positive limit means DefaultTopParkings.
func TopParkingsByEarnings(stats []ParkingStats, limit int) []ParkingStats {
	if limit <= 0 {
		limit = DefaultTopParkings
	}
	ranked := make([]ParkingStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Earnings > ranked[j].Earnings
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func computeParkingStats(ctx context.Context, parking models.Parking, bookings []models.Booking) ParkingStats {
	stats := ParkingStats{
		ParkingID:   parking.ID,
		ParkingName: parking.Name,
		Location:    parking.Location,
		Capacity:    parking.Capacity,
	}

	for _, booking := range bookings {
		stats.TotalBookings++
		if booking.IsCancelled() {
			stats.Cancellations++
		} else {
			stats.Earnings += booking.Amount.Float64()
		}

		switch booking.BookingType {
		case models.BookingTypePreBooked:
			stats.OnAppBookings++
		case models.BookingTypeOnSite:
			stats.OnSiteBookings++
		}
	}

	stats.EarningsLabel = FormatCurrency(stats.Earnings)
	if stats.TotalBookings > 0 {
		stats.CancellationRate = float64(stats.Cancellations) / float64(stats.TotalBookings) * 100
	}
	if parking.Capacity > 0 {
		stats.Utilization = float64(stats.TotalBookings) / float64(parking.Capacity)
	}
	stats.PeakHours = PeakHours(ctx, bookings)
	return stats
}

// PeakHours builds a sparse histogram of bookings per local start hour,
// busiest first. Equal counts keep ascending hour order, so the first n
// entries are the n busiest hours. Bookings without a start time are logged
// and skipped.
func PeakHours(ctx context.Context, bookings []models.Booking) []HourCount {
	var counts [hoursPerDay]int
	for _, booking := range bookings {
		if !booking.HasStartTime() {
			log.Ctx(ctx).Warn().
				Str("component", "analytics").
				Str("booking_id", booking.ID).
				Str("parking_id", booking.ParkingID).
				Msg("Skipping booking without start time in peak hour histogram")
			continue
		}
		counts[booking.StartTime.Local().Hour()]++
	}

	peaks := make([]HourCount, 0, hoursPerDay)
	for hour, count := range counts {
		if count > 0 {
			peaks = append(peaks, HourCount{Hour: hour, Count: count})
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Count > peaks[j].Count
	})
	return peaks
}
