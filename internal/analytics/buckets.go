// internal/analytics/buckets.go
package analytics

import (
	"sort"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

type DailyStats struct {
	Date          string  `json:"date"`
	Bookings      int     `json:"bookings"`
	Earnings      float64 `json:"earnings"`
	Cancellations int     `json:"cancellations"`
}

type MonthlyStats struct {
	Month         string  `json:"month"`
	Label         string  `json:"label"`
	Bookings      int     `json:"bookings"`
	Earnings      float64 `json:"earnings"`
	Cancellations int     `json:"cancellations"`
}

// monthLabel renders a YYYY-MM key as "Oct 2025".
func monthLabel(key string) string {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

type bucket struct {
	key           string
	bookings      int
	earnings      float64
	cancellations int
}

// groupByStart buckets bookings by their local start time formatted with
// layout. Buckets come back sorted by key; the ISO layouts make that
// chronological. Bookings without a start time are left out.
func groupByStart(bookings []models.Booking, layout string) []*bucket {
	byKey := make(map[string]*bucket)
	for _, booking := range bookings {
		if !booking.HasStartTime() {
			continue
		}
		key := booking.StartTime.Local().Format(layout)
		entry, ok := byKey[key]
		if !ok {
			entry = &bucket{key: key}
			byKey[key] = entry
		}

		entry.bookings++
		if booking.IsCancelled() {
			entry.cancellations++
		} else {
			entry.earnings += booking.Amount.Float64()
		}
	}

	ordered := make([]*bucket, 0, len(byKey))
	for _, entry := range byKey {
		ordered = append(ordered, entry)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].key < ordered[j].key
	})
	return ordered
}

// BookingsByDay groups bookings into sparse per-day buckets keyed YYYY-MM-DD.
func BookingsByDay(bookings []models.Booking) []DailyStats {
	buckets := groupByStart(bookings, dayKeyLayout)
	stats := make([]DailyStats, 0, len(buckets))
	for _, b := range buckets {
		stats = append(stats, DailyStats{
			Date:          b.key,
			Bookings:      b.bookings,
			Earnings:      b.earnings,
			Cancellations: b.cancellations,
		})
	}
	return stats
}

// BookingsByMonth groups bookings into sparse per-month buckets keyed YYYY-MM.
func BookingsByMonth(bookings []models.Booking) []MonthlyStats {
	buckets := groupByStart(bookings, monthKeyLayout)
	stats := make([]MonthlyStats, 0, len(buckets))
	for _, b := range buckets {
		stats = append(stats, MonthlyStats{
			Month:         b.key,
			Label:         monthLabel(b.key),
			Bookings:      b.bookings,
			Earnings:      b.earnings,
			Cancellations: b.cancellations,
		})
	}
	return stats
}

// FillDailyGaps returns a dense series with one entry per calendar day of rng,
// taking values from stats and zero for days without bookings. Entries of
// stats outside rng are dropped.
func FillDailyGaps(stats []DailyStats, rng DateRange) []DailyStats {
	if rng.End.Before(rng.Start) {
		return []DailyStats{}
	}

	byDate := make(map[string]DailyStats, len(stats))
	for _, s := range stats {
		byDate[s.Date] = s
	}

	start := rng.Start.Local()
	end := rng.End.Local()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.Local)

	dense := make([]DailyStats, 0, int(last.Sub(day).Hours()/24)+1)
	for !day.After(last) {
		key := day.Format(dayKeyLayout)
		if s, ok := byDate[key]; ok {
			dense = append(dense, s)
		} else {
			dense = append(dense, DailyStats{Date: key})
		}
		day = day.AddDate(0, 0, 1)
	}
	return dense
}

// LastN returns a copy of the final n elements of s.
func LastN[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[len(s)-n:])
	return out
}
