package models

import (
	"slices"
	"testing"
	"time"
)

func TestRawBookingNormalize(t *testing.T) {
	raw := RawBooking{
		ID:          "bk-1",
		ParkingID:   "park-001",
		VehicleType: " FOUR_WHEELER ",
		BookingType: "PRE_BOOKED",
		Status:      "canceled",
		StartTime:   "2025-11-03T09:30:00",
		EndTime:     "2025-11-03 11:30:00",
		Amount:      70,
		Duration:    2,
		CreatedAt:   "2025-11-02T21:30:00",
		CancelledAt: "2025-11-03T08:30:00",
	}

	got, problems := raw.Normalize()
	if len(problems) != 0 {
		t.Fatalf("Normalize() problems = %v, want none", problems)
	}
	if got.BookingType != BookingTypePreBooked || got.Status != BookingStatusCancelled {
		t.Fatalf("Normalize() enums = (%q, %q)", got.BookingType, got.Status)
	}
	if got.VehicleType != VehicleFourWheeler {
		t.Fatalf("Normalize() VehicleType = %q, want %q", got.VehicleType, VehicleFourWheeler)
	}
	if want := time.Date(2025, time.November, 3, 9, 30, 0, 0, time.Local); !got.StartTime.Equal(want) {
		t.Fatalf("Normalize() StartTime = %v, want %v", got.StartTime, want)
	}
	if got.EndTime.Sub(got.StartTime) != 2*time.Hour {
		t.Fatalf("Normalize() EndTime = %v", got.EndTime)
	}
	if got.CancelledAt == nil || got.CancelledAt.Hour() != 8 {
		t.Fatalf("Normalize() CancelledAt = %v", got.CancelledAt)
	}
	if got.Amount != 70 || got.Duration != 2 {
		t.Fatalf("Normalize() amount/duration = (%v, %d)", got.Amount, got.Duration)
	}
}

func TestRawBookingNormalizeFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		raw          RawBooking
		wantType     BookingType
		wantStatus   BookingStatus
		wantProblems []string
	}{
		{
			name:         "unknown_enums",
			raw:          RawBooking{BookingType: "Valet", Status: "LOST", StartTime: "2025-10-01"},
			wantType:     BookingType("valet"),
			wantStatus:   BookingStatus("lost"),
			wantProblems: []string{FieldBookingType, FieldStatus},
		},
		{
			name:         "bad_start_time",
			raw:          RawBooking{BookingType: "onsite", Status: "active", StartTime: "yesterday"},
			wantType:     BookingTypeOnSite,
			wantStatus:   BookingStatusActive,
			wantProblems: []string{FieldStartTime},
		},
		{
			name:         "empty",
			raw:          RawBooking{},
			wantProblems: []string{FieldBookingType, FieldStatus, FieldStartTime},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, problems := test.raw.Normalize()
			if got.BookingType != test.wantType || got.Status != test.wantStatus {
				t.Fatalf("Normalize() enums = (%q, %q), want (%q, %q)", got.BookingType, got.Status, test.wantType, test.wantStatus)
			}
			if !slices.Equal(problems, test.wantProblems) {
				t.Fatalf("Normalize() problems = %v, want %v", problems, test.wantProblems)
			}
			if slices.Contains(test.wantProblems, FieldStartTime) && got.HasStartTime() {
				t.Fatalf("Normalize() StartTime = %v, want zero", got.StartTime)
			}
			if got.CancelledAt != nil {
				t.Fatalf("Normalize() CancelledAt = %v, want nil", got.CancelledAt)
			}
		})
	}
}
