// Package analytics turns booking and parking snapshots into the figures the
// provider dashboard shows: time buckets, per-parking statistics, KPIs with
// growth, and report payloads.
//
// The package-level functions are pure. They never modify their inputs and
// never fail on a malformed booking; anomalies are logged through the zerolog
// logger carried by the context. Engine loads snapshots from injected sources
// and feeds them to those functions.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/models"
)

const (
	dailySeriesLength   = 30
	monthlySeriesLength = 6
)

// BookingSource lists every booking known to the provider.
type BookingSource interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

// ParkingSource lists the provider's parking locations.
type ParkingSource interface {
	ListParkings(ctx context.Context) ([]models.Parking, error)
}

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Engine struct {
	bookings BookingSource
	parkings ParkingSource
	clock    Clock
}

type Option func(*Engine)

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func NewEngine(bookings BookingSource, parkings ParkingSource, opts ...Option) (*Engine, error) {
	if bookings == nil {
		return nil, errors.New("analytics engine requires a booking source")
	}
	if parkings == nil {
		return nil, errors.New("analytics engine requires a parking source")
	}
	e := &Engine{bookings: bookings, parkings: parkings, clock: realClock{}}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Query selects the reporting window and, optionally, a single parking.
type Query struct {
	Filter      RangeFilter
	CustomStart *time.Time
	CustomEnd   *time.Time
	ParkingID   string
}

// Resolve turns the query's filter into a date range using the engine clock.
func (e *Engine) Resolve(q Query) *DateRange {
	return ResolveDateRange(q.Filter, e.clock.Now(), q.CustomStart, q.CustomEnd)
}

type Dashboard struct {
	Filter         RangeFilter    `json:"filter"`
	PeriodLabel    string         `json:"periodLabel"`
	Range          *DateRange     `json:"range,omitempty"`
	KPIs           KPIData        `json:"kpis"`
	MonthOverMonth MonthGrowth    `json:"monthOverMonth"`
	Daily          []DailyStats   `json:"daily"`
	Monthly        []MonthlyStats `json:"monthly"`
	TypeSplit      []SplitSlice   `json:"typeSplit"`
	Selected       *ParkingStats  `json:"selected,omitempty"`
	Parkings       []ParkingStats `json:"parkings"`
}

// Dashboard computes the overview page for q. When q.ParkingID is set the type
// split and Selected are restricted to that parking. Month-over-month growth
// is only reported for a bounded window.
func (e *Engine) Dashboard(ctx context.Context, q Query) (Dashboard, error) {
	bookings, parkings, err := e.snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	now := e.clock.Now()
	rng := ResolveDateRange(q.Filter, now, q.CustomStart, q.CustomEnd)
	filtered := FilterByRange(bookings, rng)
	monthly := BookingsByMonth(filtered)

	dashboard := Dashboard{
		Filter:      q.Filter,
		PeriodLabel: periodLabel(q.Filter, rng),
		Range:       rng,
		KPIs:        ComputeKPIs(bookings, rng),
		Daily:       dailySeries(filtered, rng, now),
		Monthly:     LastN(monthly, monthlySeriesLength),
		Parkings:    AllParkingStats(ctx, filtered, parkings, nil),
	}
	if rng != nil {
		dashboard.MonthOverMonth = MonthOverMonthGrowth(monthly)
	}

	if q.ParkingID != "" {
		selected := ParkingStatsFor(ctx, filtered, parkings, q.ParkingID)
		dashboard.Selected = &selected
		dashboard.TypeSplit = BookingTypeSplit(BookingsByParking(filtered, q.ParkingID))
	} else {
		dashboard.TypeSplit = BookingTypeSplit(filtered)
	}

	log.Ctx(ctx).Debug().
		Str("component", "analytics").
		Str("filter", string(q.Filter)).
		Int("bookings", len(bookings)).
		Int("filtered", len(filtered)).
		Msg("Dashboard computed")
	return dashboard, nil
}

// dailySeries is the trailing dailySeriesLength days of the window. A bounded
// window is dense up to now, or up to its end when it is already over; all
// time stays sparse.
func dailySeries(filtered []models.Booking, rng *DateRange, now time.Time) []DailyStats {
	daily := BookingsByDay(filtered)
	if rng == nil {
		return LastN(daily, dailySeriesLength)
	}

	window := *rng
	if window.End.After(now) && !window.Start.After(now) {
		window.End = now
	}
	end := window.End.Local()
	first := time.Date(end.Year(), end.Month(), end.Day()-(dailySeriesLength-1), 0, 0, 0, 0, time.Local)
	if window.Start.Before(first) {
		window.Start = first
	}
	return FillDailyGaps(daily, window)
}

// ParkingStats returns one record per known parking for the query window.
func (e *Engine) ParkingStats(ctx context.Context, q Query) ([]ParkingStats, error) {
	bookings, parkings, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return AllParkingStats(ctx, bookings, parkings, e.Resolve(q)), nil
}

// ParkingDetail returns the statistics of q.ParkingID for the query window.
func (e *Engine) ParkingDetail(ctx context.Context, q Query) (ParkingStats, error) {
	bookings, parkings, err := e.snapshot(ctx)
	if err != nil {
		return ParkingStats{}, err
	}
	return ParkingStatsFor(ctx, FilterByRange(bookings, e.Resolve(q)), parkings, q.ParkingID), nil
}

func (e *Engine) TopParkings(ctx context.Context, q Query, limit int) ([]ParkingStats, error) {
	stats, err := e.ParkingStats(ctx, q)
	if err != nil {
		return nil, err
	}
	return TopParkingsByEarnings(stats, limit), nil
}

func (e *Engine) Report(ctx context.Context, q Query) (ReportData, error) {
	bookings, parkings, err := e.snapshot(ctx)
	if err != nil {
		return ReportData{}, err
	}
	now := e.clock.Now()
	rng := ResolveDateRange(q.Filter, now, q.CustomStart, q.CustomEnd)
	report := BuildReport(ctx, bookings, parkings, q.Filter, rng, now)
	if !report.Reconciles() {
		log.Ctx(ctx).Error().
			Str("component", "analytics").
			Str("filter", string(q.Filter)).
			Msg("Report location totals do not match KPI totals")
	}
	return report, nil
}

func (e *Engine) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	bookings, err := e.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return RecentBookings(bookings, limit), nil
}

func (e *Engine) snapshot(ctx context.Context) ([]models.Booking, []models.Parking, error) {
	bookings, err := e.bookings.ListBookings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list bookings: %w", err)
	}
	parkings, err := e.parkings.ListParkings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list parkings: %w", err)
	}
	return bookings, parkings, nil
}
