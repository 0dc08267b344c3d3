// internal/analytics/report.go
package analytics

import (
	"context"
	"math"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const (
	ReportTitle           = "PrePark Analytics Report"
	UnassignedParkingName = "Unassigned"

	// days assumed for per-day averages when the report covers all time
	allTimeReportDays = 30
	reportFileLayout  = "2006-01-02_150405"
)

type LocationRow struct {
	ParkingID        string  `json:"parkingId"`
	Name             string  `json:"name"`
	Bookings         int     `json:"bookings"`
	Revenue          float64 `json:"revenue"`
	RevenueLabel     string  `json:"revenueLabel"`
	CancellationRate float64 `json:"cancellationRate"`
	AveragePerDay    float64 `json:"averagePerDay"`
}

// ReportData is everything the PDF renderer needs. The location rows and the
// KPI totals are computed from the same filtered bookings.
type ReportData struct {
	Title        string          `json:"title"`
	Filter       RangeFilter     `json:"filter"`
	PeriodLabel  string          `json:"periodLabel"`
	Range        *DateRange      `json:"range,omitempty"`
	GeneratedAt  time.Time       `json:"generatedAt"`
	FileName     string          `json:"fileName"`
	KPIs         KPIData         `json:"kpis"`
	Locations    []LocationRow   `json:"locations"`
	BookingTypes []TypeBreakdown `json:"bookingTypes"`
	Statuses     []StatusShare   `json:"statuses"`
}

// BuildReport assembles the report for the bookings inside rng. Bookings that
// reference a parking missing from parkings are reported on an extra
// UnassignedParkingName row so revenue still adds up to the KPI total.
func BuildReport(ctx context.Context, bookings []models.Booking, parkings []models.Parking, filter RangeFilter, rng *DateRange, now time.Time) ReportData {
	filtered := FilterByRange(bookings, rng)

	days := allTimeReportDays
	if rng != nil {
		days = rng.Days()
	}

	known := make(map[string]struct{}, len(parkings))
	for _, parking := range parkings {
		known[parking.ID] = struct{}{}
	}

	stats := AllParkingStats(ctx, filtered, parkings, nil)
	locations := make([]LocationRow, 0, len(stats)+1)
	for _, s := range stats {
		locations = append(locations, locationRow(s, days))
	}

	var unassigned []models.Booking
	for _, booking := range filtered {
		if _, ok := known[booking.ParkingID]; !ok {
			unassigned = append(unassigned, booking)
		}
	}
	if len(unassigned) > 0 {
		orphan := computeParkingStats(ctx, models.Parking{Name: UnassignedParkingName}, unassigned)
		locations = append(locations, locationRow(orphan, days))
	}

	return ReportData{
		Title:        ReportTitle,
		Filter:       filter,
		PeriodLabel:  periodLabel(filter, rng),
		Range:        rng,
		GeneratedAt:  now,
		FileName:     "PrePark_Analytics_" + now.Format(reportFileLayout) + ".pdf",
		KPIs:         ComputeKPIs(bookings, rng),
		Locations:    locations,
		BookingTypes: BreakdownByType(filtered),
		Statuses:     BreakdownByStatus(filtered),
	}
}

func locationRow(s ParkingStats, days int) LocationRow {
	return LocationRow{
		ParkingID:        s.ParkingID,
		Name:             s.ParkingName,
		Bookings:         s.TotalBookings,
		Revenue:          s.Earnings,
		RevenueLabel:     s.EarningsLabel,
		CancellationRate: s.CancellationRate,
		AveragePerDay:    float64(s.TotalBookings) / float64(max(days, 1)),
	}
}

// Reconciles reports whether the location table adds up to the KPI summary.
func (r ReportData) Reconciles() bool {
	var bookings int
	var revenue float64
	for _, row := range r.Locations {
		bookings += row.Bookings
		revenue += row.Revenue
	}
	if bookings != r.KPIs.TotalBookings {
		return false
	}
	return math.Abs(revenue-r.KPIs.TotalEarnings) <= 1e-6*math.Max(1, math.Abs(r.KPIs.TotalEarnings))
}
