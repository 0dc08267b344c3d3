package models

import (
	"testing"
	"time"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		value  string
		want   BookingStatus
		wantOK bool
	}{
		{value: "confirmed", want: BookingStatusConfirmed, wantOK: true},
		{value: "ACTIVE", want: BookingStatusActive, wantOK: true},
		{value: " completed ", want: BookingStatusCompleted, wantOK: true},
		{value: "CANCELLED", want: BookingStatusCancelled, wantOK: true},
		{value: "canceled", want: BookingStatusCancelled, wantOK: true},
		{value: "pending", want: "", wantOK: false},
		{value: "", want: "", wantOK: false},
	}

	for _, test := range tests {
		got, ok := ParseBookingStatus(test.value)
		if got != test.want || ok != test.wantOK {
			t.Fatalf("ParseBookingStatus(%q) = (%q, %t), want (%q, %t)", test.value, got, ok, test.want, test.wantOK)
		}
	}
}

func TestParseBookingType(t *testing.T) {
	tests := []struct {
		value  string
		want   BookingType
		wantOK bool
	}{
		{value: "prebooked", want: BookingTypePreBooked, wantOK: true},
		{value: "PRE_BOOKED", want: BookingTypePreBooked, wantOK: true},
		{value: "onsite", want: BookingTypeOnSite, wantOK: true},
		{value: "ON_SITE", want: BookingTypeOnSite, wantOK: true},
		{value: "walkin", want: "", wantOK: false},
	}

	for _, test := range tests {
		got, ok := ParseBookingType(test.value)
		if got != test.want || ok != test.wantOK {
			t.Fatalf("ParseBookingType(%q) = (%q, %t), want (%q, %t)", test.value, got, ok, test.want, test.wantOK)
		}
	}
}

func TestNewBooking(t *testing.T) {
	parking := Parking{ID: "park-001", Name: "Dadar Station Parking", Capacity: 150, PricePerHour: 35}
	start := time.Date(2025, time.October, 5, 10, 0, 0, 0, time.Local)

	prebooked := NewBooking("BK0001", parking, "Rahul Sharma", "MH01AB1234", VehicleFourWheeler, BookingTypePreBooked, BookingStatusCompleted, start, 3)
	if prebooked.Amount != 105 {
		t.Fatalf("Amount = %v, want 105", prebooked.Amount)
	}
	if want := start.Add(3 * time.Hour); !prebooked.EndTime.Equal(want) {
		t.Fatalf("EndTime = %v, want %v", prebooked.EndTime, want)
	}
	if want := start.Add(-PreBookedLeadTime); !prebooked.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", prebooked.CreatedAt, want)
	}
	if prebooked.CancelledAt != nil {
		t.Fatalf("CancelledAt = %v, want nil", prebooked.CancelledAt)
	}

	cancelled := NewBooking("BK0002", parking, "Priya Patel", "MH02CD5678", VehicleTwoWheeler, BookingTypeOnSite, BookingStatusCancelled, start, 2)
	if !cancelled.CreatedAt.Equal(start) {
		t.Fatalf("CreatedAt = %v, want %v", cancelled.CreatedAt, start)
	}
	if cancelled.CancelledAt == nil || !cancelled.CancelledAt.Equal(start.Add(-time.Hour)) {
		t.Fatalf("CancelledAt = %v, want %v", cancelled.CancelledAt, start.Add(-time.Hour))
	}
	if !cancelled.IsCancelled() {
		t.Fatalf("IsCancelled() = false, want true")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   time.Time
		wantOK bool
	}{
		{name: "rfc3339", value: "2025-10-05T10:30:00Z", want: time.Date(2025, time.October, 5, 10, 30, 0, 0, time.UTC), wantOK: true},
		{name: "local_t", value: "2025-10-05T10:30:00", want: time.Date(2025, time.October, 5, 10, 30, 0, 0, time.Local), wantOK: true},
		{name: "local_space", value: "2025-10-05 10:30:00", want: time.Date(2025, time.October, 5, 10, 30, 0, 0, time.Local), wantOK: true},
		{name: "date_only", value: "2025-10-05", want: time.Date(2025, time.October, 5, 0, 0, 0, 0, time.Local), wantOK: true},
		{name: "garbage", value: "yesterday", wantOK: false},
		{name: "empty", value: "", wantOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := ParseTimestamp(test.value)
			if ok != test.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %t, want %t", test.value, ok, test.wantOK)
			}
			if !got.Equal(test.want) {
				t.Fatalf("ParseTimestamp(%q) = %v, want %v", test.value, got, test.want)
			}
		})
	}
}
