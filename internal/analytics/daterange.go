// internal/analytics/daterange.go
package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

// RangeFilter names a reporting window relative to the current date.
type RangeFilter string

const (
	RangeToday     RangeFilter = "today"
	RangeLastMonth RangeFilter = "lastMonth"
	RangeThisYear  RangeFilter = "thisYear"
	RangeLastYear  RangeFilter = "lastYear"
	RangeAll       RangeFilter = "all"
	RangeCustom    RangeFilter = "custom"
)

// ParseRangeFilter maps a filter token to a RangeFilter. Unknown tokens mean
// RangeAll.
func ParseRangeFilter(raw string) RangeFilter {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("_", "", "-", "").Replace(normalized)
	switch normalized {
	case "today":
		return RangeToday
	case "lastmonth":
		return RangeLastMonth
	case "thisyear":
		return RangeThisYear
	case "lastyear":
		return RangeLastYear
	case "custom":
		return RangeCustom
	default:
		return RangeAll
	}
}

// Label is the human-readable period name used on cards and reports.
func (f RangeFilter) Label() string {
	switch f {
	case RangeToday:
		return "Today"
	case RangeLastMonth:
		return "Last Month"
	case RangeThisYear:
		return "This Year"
	case RangeLastYear:
		return "Last Year"
	case RangeCustom:
		return "Custom Range"
	default:
		return "All Time"
	}
}

// periodLabel names the window that was applied. A filter that resolved to
// no range, such as a custom range missing a bound, covers all time.
func periodLabel(filter RangeFilter, rng *DateRange) string {
	if rng == nil {
		return RangeAll.Label()
	}
	return filter.Label()
}

// DateRange is a closed interval: both Start and End are included.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveDateRange returns the window for filter relative to now, in now's
// location. A nil result means no filtering. RangeCustom needs both bounds.
func ResolveDateRange(filter RangeFilter, now time.Time, customStart, customEnd *time.Time) *DateRange {
	loc := now.Location()
	year, month, day := now.Date()

	switch filter {
	case RangeToday:
		return &DateRange{
			Start: time.Date(year, month, day, 0, 0, 0, 0, loc),
			End:   time.Date(year, month, day, 23, 59, 59, 0, loc),
		}
	case RangeLastMonth:
		// day 0 of the current month is the last day of the previous one
		return &DateRange{
			Start: time.Date(year, month-1, 1, 0, 0, 0, 0, loc),
			End:   time.Date(year, month, 0, 23, 59, 59, 0, loc),
		}
	case RangeThisYear:
		return yearRange(year, loc)
	case RangeLastYear:
		return yearRange(year-1, loc)
	case RangeCustom:
		if customStart == nil || customEnd == nil {
			return nil
		}
		return &DateRange{Start: *customStart, End: *customEnd}
	default:
		return nil
	}
}

func yearRange(year int, loc *time.Location) *DateRange {
	return &DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, 0, loc),
	}
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Previous is the adjacent window of the same length that ends one
// millisecond before r starts.
func (r DateRange) Previous() DateRange {
	length := r.End.Sub(r.Start)
	return DateRange{
		Start: r.Start.Add(-length),
		End:   r.Start.Add(-time.Millisecond),
	}
}

// Days is the number of started days the range spans, at least 1.
func (r DateRange) Days() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// FilterByRange returns the bookings whose start time falls inside rng. A nil
// rng keeps every booking. Bookings without a start time never match a range.
func FilterByRange(bookings []models.Booking, rng *DateRange) []models.Booking {
	if rng == nil {
		out := make([]models.Booking, len(bookings))
		copy(out, bookings)
		return out
	}

	out := make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if !booking.HasStartTime() {
			continue
		}
		if rng.Contains(booking.StartTime) {
			out = append(out, booking)
		}
	}
	return out
}
