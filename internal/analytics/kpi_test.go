package analytics

import (
	"math"
	"testing"
	"time"
)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "zero_baseline", current: 12, previous: 0, want: 0},
		{name: "both_zero", current: 0, previous: 0, want: 0},
		{name: "doubled", current: 20, previous: 10, want: 100},
		{name: "halved", current: 5, previous: 10, want: -50},
		{name: "flat", current: 10, previous: 10, want: 0},
		{name: "nan_baseline", current: 1, previous: math.NaN(), want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := GrowthPercent(test.current, test.previous)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("GrowthPercent(%v, %v) = %v, want finite", test.current, test.previous, got)
			}
			if got != test.want {
				t.Fatalf("GrowthPercent(%v, %v) = %v, want %v", test.current, test.previous, got, test.want)
			}
		})
	}
}

func TestComputeKPIsAllTime(t *testing.T) {
	kpis := ComputeKPIs(testBookings(), nil)

	if kpis.TotalBookings != 7 {
		t.Fatalf("TotalBookings = %d, want 7", kpis.TotalBookings)
	}
	if kpis.TotalCancellations != 2 {
		t.Fatalf("TotalCancellations = %d, want 2", kpis.TotalCancellations)
	}
	if kpis.TotalEarnings != 315 {
		t.Fatalf("TotalEarnings = %v, want 315", kpis.TotalEarnings)
	}
	if kpis.OnAppBookings != 4 || kpis.OnSiteBookings != 3 {
		t.Fatalf("split = (%d, %d), want (4, 3)", kpis.OnAppBookings, kpis.OnSiteBookings)
	}
	if want := 2.0 / 7.0 * 100; math.Abs(kpis.CancellationRate-want) > 1e-9 {
		t.Fatalf("CancellationRate = %v, want %v", kpis.CancellationRate, want)
	}
	if kpis.BookingsGrowth != 0 || kpis.EarningsGrowth != 0 {
		t.Fatalf("growth = (%v, %v), want zero without a range", kpis.BookingsGrowth, kpis.EarningsGrowth)
	}
}

func TestComputeKPIsComparesPreviousWindow(t *testing.T) {
	now := at(2025, time.December, 10, 12)
	rng := ResolveDateRange(RangeLastMonth, now, nil, nil)

	kpis := ComputeKPIs(testBookings(), rng)
	if kpis.TotalBookings != 3 || kpis.TotalEarnings != 105 || kpis.TotalCancellations != 1 {
		t.Fatalf("current totals = %+v, want 3 bookings, 105 earned, 1 cancelled", kpis.Totals)
	}
	if kpis.BookingsGrowth != 0 {
		t.Fatalf("BookingsGrowth = %v, want 0", kpis.BookingsGrowth)
	}
	if math.Abs(kpis.EarningsGrowth-(-40)) > 1e-9 {
		t.Fatalf("EarningsGrowth = %v, want -40", kpis.EarningsGrowth)
	}
}

func TestComputeKPIsEmptyPreviousWindow(t *testing.T) {
	now := at(2025, time.November, 15, 12)
	rng := ResolveDateRange(RangeLastMonth, now, nil, nil)

	kpis := ComputeKPIs(testBookings(), rng)
	if kpis.TotalBookings != 3 {
		t.Fatalf("TotalBookings = %d, want 3", kpis.TotalBookings)
	}
	if kpis.BookingsGrowth != 0 || kpis.EarningsGrowth != 0 {
		t.Fatalf("growth = (%v, %v), want zero against an empty window", kpis.BookingsGrowth, kpis.EarningsGrowth)
	}
}

func TestTotalsCancellationPercentEmpty(t *testing.T) {
	if got := (Totals{}).CancellationPercent(); got != 0 {
		t.Fatalf("CancellationPercent() = %v, want 0", got)
	}
	if got := TotalEarnings(nil); got != 0 {
		t.Fatalf("TotalEarnings(nil) = %v, want 0", got)
	}
}

func TestMonthOverMonthGrowth(t *testing.T) {
	tests := []struct {
		name    string
		monthly []MonthlyStats
		want    MonthGrowth
	}{
		{name: "empty", monthly: nil, want: MonthGrowth{}},
		{name: "single_month", monthly: []MonthlyStats{{Month: "2025-10", Bookings: 4, Earnings: 140}}, want: MonthGrowth{}},
		{
			name: "zero_baseline",
			monthly: []MonthlyStats{
				{Month: "2025-10"},
				{Month: "2025-11", Bookings: 3, Earnings: 105},
			},
			want: MonthGrowth{},
		},
		{
			name: "last_two_months",
			monthly: []MonthlyStats{
				{Month: "2025-09", Bookings: 100, Earnings: 9000},
				{Month: "2025-10", Bookings: 4, Earnings: 200},
				{Month: "2025-11", Bookings: 6, Earnings: 150},
			},
			want: MonthGrowth{BookingsGrowth: 50, EarningsGrowth: -25},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MonthOverMonthGrowth(test.monthly); got != test.want {
				t.Fatalf("MonthOverMonthGrowth() = %+v, want %+v", got, test.want)
			}
		})
	}
}
