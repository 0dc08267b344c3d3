// internal/analytics/kpi.go
package analytics

import (
	"math"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// Totals are the headline counts for a set of bookings.
type Totals struct {
	TotalBookings      int     `json:"totalBookings"`
	TotalEarnings      float64 `json:"totalEarnings"`
	TotalCancellations int     `json:"totalCancellations"`
	OnAppBookings      int     `json:"onAppBookings"`
	OnSiteBookings     int     `json:"onSiteBookings"`
}

// CancellationPercent is the cancelled share of bookings as a percentage.
func (t Totals) CancellationPercent() float64 {
	if t.TotalBookings == 0 {
		return 0
	}
	return float64(t.TotalCancellations) / float64(t.TotalBookings) * 100
}

type KPIData struct {
	Totals
	CancellationRate float64 `json:"cancellationRate"`
	BookingsGrowth   float64 `json:"bookingsGrowth"`
	EarningsGrowth   float64 `json:"earningsGrowth"`
}

func Summarize(bookings []models.Booking) Totals {
	var totals Totals
	for _, booking := range bookings {
		totals.TotalBookings++
		if booking.IsCancelled() {
			totals.TotalCancellations++
		} else {
			totals.TotalEarnings += booking.Amount.Float64()
		}

		switch booking.BookingType {
		case models.BookingTypePreBooked:
			totals.OnAppBookings++
		case models.BookingTypeOnSite:
			totals.OnSiteBookings++
		}
	}
	return totals
}

// TotalEarnings sums the amounts of bookings that were not cancelled.
func TotalEarnings(bookings []models.Booking) float64 {
	return Summarize(bookings).TotalEarnings
}

// GrowthPercent is the change from previous to current in percent. A zero
// baseline yields 0 rather than an infinite growth.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	growth := (current - previous) / previous * 100
	if math.IsNaN(growth) || math.IsInf(growth, 0) {
		return 0
	}
	return growth
}

// ComputeKPIs summarizes the bookings inside rng and compares them with the
// preceding window of equal length. Without a range there is nothing to
// compare against and both growth figures are 0.
func ComputeKPIs(bookings []models.Booking, rng *DateRange) KPIData {
	current := Summarize(FilterByRange(bookings, rng))
	kpis := KPIData{
		Totals:           current,
		CancellationRate: current.CancellationPercent(),
	}
	if rng == nil {
		return kpis
	}

	previousRange := rng.Previous()
	previous := Summarize(FilterByRange(bookings, &previousRange))
	kpis.BookingsGrowth = GrowthPercent(float64(current.TotalBookings), float64(previous.TotalBookings))
	kpis.EarningsGrowth = GrowthPercent(current.TotalEarnings, previous.TotalEarnings)
	return kpis
}

// MonthGrowth compares the last two monthly buckets of a series.
type MonthGrowth struct {
	BookingsGrowth float64 `json:"bookingsGrowth"`
	EarningsGrowth float64 `json:"earningsGrowth"`
}

// MonthOverMonthGrowth is the growth of the final month of monthly over the
// month before it. Fewer than two buckets yield zero growth.
func MonthOverMonthGrowth(monthly []MonthlyStats) MonthGrowth {
	if len(monthly) < 2 {
		return MonthGrowth{}
	}
	last := monthly[len(monthly)-1]
	previous := monthly[len(monthly)-2]
	return MonthGrowth{
		BookingsGrowth: GrowthPercent(float64(last.Bookings), float64(previous.Bookings)),
		EarningsGrowth: GrowthPercent(last.Earnings, previous.Earnings),
	}
}
