package analytics

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "₹0"},
		{amount: 999, want: "₹999"},
		{amount: 1000, want: "₹1,000"},
		{amount: 1234567, want: "₹1,234,567"},
		{amount: 2.5, want: "₹3"},
		{amount: 2.4, want: "₹2"},
		{amount: 999.6, want: "₹1,000"},
		{amount: -1234, want: "₹-1,234"},
		{amount: -0.4, want: "₹0"},
		{amount: 9.3e18, want: "₹9,300,000,000,000,000,000"},
		{amount: 1e19, want: "₹10,000,000,000,000,000,000"},
		{amount: -1e19, want: "₹-10,000,000,000,000,000,000"},
		{amount: math.NaN(), want: "₹0"},
		{amount: math.Inf(1), want: "₹0"},
	}

	for _, test := range tests {
		if got := FormatCurrency(test.amount); got != test.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", test.amount, got, test.want)
		}
	}
}

func TestFormatCompactCurrency(t *testing.T) {
	if got := FormatCompactCurrency(12345); got != "₹12.3k" {
		t.Fatalf("FormatCompactCurrency(12345) = %q, want ₹12.3k", got)
	}
	if got := FormatCompactCurrency(math.NaN()); got != "₹0.0k" {
		t.Fatalf("FormatCompactCurrency(NaN) = %q, want ₹0.0k", got)
	}
}

func TestFormatGrowth(t *testing.T) {
	tests := []struct {
		growth float64
		want   string
	}{
		{growth: 12.54, want: "↑ 12.5%"},
		{growth: -40, want: "↓ 40.0%"},
		{growth: 0, want: ""},
	}

	for _, test := range tests {
		if got := FormatGrowth(test.growth); got != test.want {
			t.Fatalf("FormatGrowth(%v) = %q, want %q", test.growth, got, test.want)
		}
	}
}
