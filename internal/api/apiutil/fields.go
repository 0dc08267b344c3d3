package apiutil

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/analytics"
)

const (
	rangeQueryKey   = "range"
	startQueryKey   = "start"
	endQueryKey     = "end"
	parkingQueryKey = "parking"
	limitQueryKey   = "limit"

	queryDateLayout = "2006-01-02"
)

// ParseLimit reads the limit query parameter. A missing value yields
// fallback; anything that is not a non-negative integer is a FieldError.
func ParseLimit(r *http.Request, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(limitQueryKey))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, FieldError{Field: limitQueryKey, Reason: "must be 0 or greater"}
	}
	return value, nil
}

// ParseQueryDate accepts a calendar date or an RFC 3339 timestamp. Calendar
// dates are local midnight; with endOfDay they become the last instant of
// that day so a custom range includes its end date.
func ParseQueryDate(raw, field string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(queryDateLayout, raw, time.Local)
	if err != nil {
		return nil, FieldError{Field: field, Reason: "must be YYYY-MM-DD or RFC 3339"}
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return &t, nil
}

// AnalyticsQuery builds the engine query from range, start, end and parking.
// An unknown range token means all time. Custom bounds are only read for the
// custom range; a custom range missing either bound also means all time.
func AnalyticsQuery(r *http.Request, defaultFilter analytics.RangeFilter) (analytics.Query, error) {
	values := r.URL.Query()

	q := analytics.Query{
		Filter:    defaultFilter,
		ParkingID: strings.TrimSpace(values.Get(parkingQueryKey)),
	}
	if raw := values.Get(rangeQueryKey); raw != "" {
		q.Filter = analytics.ParseRangeFilter(raw)
	}
	if q.Filter != analytics.RangeCustom {
		return q, nil
	}

	start, err := ParseQueryDate(values.Get(startQueryKey), startQueryKey, false)
	if err != nil {
		return analytics.Query{}, err
	}
	end, err := ParseQueryDate(values.Get(endQueryKey), endQueryKey, true)
	if err != nil {
		return analytics.Query{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return analytics.Query{}, FieldError{Field: endQueryKey, Reason: "must not be before start"}
	}
	q.CustomStart = start
	q.CustomEnd = end
	return q, nil
}
