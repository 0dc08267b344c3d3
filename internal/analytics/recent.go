// internal/analytics/recent.go
package analytics

import (
	"sort"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const DefaultRecentBookings = 10

// RecentBookings returns up to limit bookings, most recently created first.
func RecentBookings(bookings []models.Booking, limit int) []models.Booking {
	if limit <= 0 {
		limit = DefaultRecentBookings
	}
	recent := make([]models.Booking, len(bookings))
	copy(recent, bookings)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
