// internal/analytics/breakdown.go
package analytics

import (
	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

type SplitSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BookingTypeSplit is the on-app versus on-site pie chart data.
func BookingTypeSplit(bookings []models.Booking) []SplitSlice {
	totals := Summarize(bookings)
	return []SplitSlice{
		{Name: models.BookingTypePreBooked.Label() + " Bookings", Value: totals.OnAppBookings},
		{Name: models.BookingTypeOnSite.Label() + " Bookings", Value: totals.OnSiteBookings},
	}
}

type TypeBreakdown struct {
	BookingType      models.BookingType `json:"bookingType"`
	Label            string             `json:"label"`
	Count            int                `json:"count"`
	Revenue          float64            `json:"revenue"`
	AverageValue     float64            `json:"averageValue"`
	CancellationRate float64            `json:"cancellationRate"`
}

var breakdownDetails = map[models.BookingType]string{
	models.BookingTypePreBooked: "Pre-booked",
	models.BookingTypeOnSite:    "Walk-in",
}

func breakdownLabel(t models.BookingType) string {
	return t.Label() + " (" + breakdownDetails[t] + ")"
}

// BreakdownByType compares pre-booked and on-site bookings. Averages and
// rates divide by at least one booking.
func BreakdownByType(bookings []models.Booking) []TypeBreakdown {
	rows := []TypeBreakdown{
		{BookingType: models.BookingTypePreBooked, Label: breakdownLabel(models.BookingTypePreBooked)},
		{BookingType: models.BookingTypeOnSite, Label: breakdownLabel(models.BookingTypeOnSite)},
	}
	cancelled := make([]int, len(rows))

	for _, booking := range bookings {
		var idx int
		switch booking.BookingType {
		case models.BookingTypePreBooked:
			idx = 0
		case models.BookingTypeOnSite:
			idx = 1
		default:
			continue
		}

		rows[idx].Count++
		if booking.IsCancelled() {
			cancelled[idx]++
		} else {
			rows[idx].Revenue += booking.Amount.Float64()
		}
	}

	for i := range rows {
		denominator := float64(max(rows[i].Count, 1))
		rows[i].AverageValue = rows[i].Revenue / denominator
		rows[i].CancellationRate = float64(cancelled[i]) / denominator * 100
	}
	return rows
}

type StatusShare struct {
	Status     models.BookingStatus `json:"status"`
	Label      string               `json:"label"`
	Count      int                  `json:"count"`
	Percentage float64              `json:"percentage"`
}

// BreakdownByStatus counts bookings per status in models.BookingStatuses
// order. Percentages are of all bookings.
func BreakdownByStatus(bookings []models.Booking) []StatusShare {
	counts := make(map[models.BookingStatus]int, len(models.BookingStatuses))
	for _, booking := range bookings {
		counts[booking.Status]++
	}

	denominator := float64(max(len(bookings), 1))
	shares := make([]StatusShare, 0, len(models.BookingStatuses))
	for _, status := range models.BookingStatuses {
		shares = append(shares, StatusShare{
			Status:     status,
			Label:      status.Label(),
			Count:      counts[status],
			Percentage: float64(counts[status]) / denominator * 100,
		})
	}
	return shares
}
